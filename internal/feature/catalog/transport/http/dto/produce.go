// Package dto defines data transfer objects for the catalog HTTP API.
package dto

// ProduceItem represents a listing in the /get_all_produce response.
// Field names follow the wire contract consumed by the frontend.
type ProduceItem struct {
	FruitType   string `json:"fruit_type"`
	NumFruits   int    `json:"num_fruits"`
	Description string `json:"description"`
}

// AddProduceReq represents the request body for the /add_produce_type endpoint.
// Business validation (non-empty fields, non-negative count, unique
// description) happens in the usecase.
type AddProduceReq struct {
	FruitType   string `json:"fruit_type"`
	NumFruits   int    `json:"num_fruits"`
	Description string `json:"description"`
}

// BuyProduceReq represents the request body for the /buy_produce endpoint.
type BuyProduceReq struct {
	ListingID uint `json:"listing_id"`
}
