package dto

// LogoutReq represents the request body for the /logout endpoint.
// The frontend sends {"logout": true}; the flag itself carries no meaning,
// the session is taken from the cookie or Authorization header.
type LogoutReq struct {
	Logout bool `json:"logout"`
}
