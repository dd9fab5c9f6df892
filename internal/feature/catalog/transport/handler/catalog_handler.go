// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/catalog/domain/entity"
	"market_backend/internal/feature/catalog/transport/http/dto"
	"market_backend/internal/feature/catalog/usecase"
	"market_backend/internal/platform/token"
)

// CatalogUsecase は出品カタログに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	ListAll(ctx context.Context) ([]entity.ProduceListing, error)
	AddListing(ctx context.Context, accountID uint, kind string, count int, description string) (uint, error)
	Purchase(ctx context.Context, listingID uint) (*entity.ProduceListing, error)
}

// CatalogHandler は出品カタログに関するHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListAll は全出品の一覧を取得するAPIです。認証は不要です。
// Usecaseを呼び出して出品一覧を取得し、DTOに変換してJSONレスポンスとして返します。
// ストレージ障害時のみ500を返し、内部エラーは公開しません。
func (h *CatalogHandler) ListAll(c *gin.Context) {
	listings, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("list produce failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "catalog unavailable"})
		return
	}
	out := make([]dto.ProduceItem, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.ProduceItem{
			FruitType:   l.Kind,
			NumFruits:   l.Count,
			Description: l.Description,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddProduce は出品を登録するAPIです。有効なセッションが必要です。
// 所有者はミドルウェアが解決したアカウントIDから決まります。
// - フィールド欠落・負数は400を返却
// - 説明文の重複は409を返却
// - 成功時は200で{"success": true}を返却
func (h *CatalogHandler) AddProduce(c *gin.Context) {
	var req dto.AddProduceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add produce bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	accountID := c.GetUint(token.ContextAccountID)
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "NOT LOGGED IN"})
		return
	}

	id, err := h.uc.AddListing(c.Request.Context(), accountID, req.FruitType, req.NumFruits, req.Description)
	switch {
	case err == nil:
		slog.Info("produce listed", "listing_id", id, "account_id", accountID, "fruit_type", req.FruitType)
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "FRUIT TYPE AND DESCRIPTION ARE REQUIRED"})
	case errors.Is(err, usecase.ErrNegativeCount):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "NUM FRUITS MUST NOT BE NEGATIVE"})
	case errors.Is(err, usecase.ErrDescriptionTaken):
		slog.Warn("add produce conflict", "account_id", accountID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "DESCRIPTION ALREADY EXISTS"})
	default:
		slog.Error("add produce failed", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not add produce"})
	}
}

// BuyProduce は購入をシミュレートするAPIです。有効なセッションが必要です。
// 出品の存在確認のみ行い、在庫・所有者は一切変更しません。
func (h *CatalogHandler) BuyProduce(c *gin.Context) {
	var req dto.BuyProduceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("buy produce bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	listing, err := h.uc.Purchase(c.Request.Context(), req.ListingID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "fruit_type": listing.Kind})
	case errors.Is(err, usecase.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "LISTING NOT FOUND"})
	default:
		slog.Error("buy produce failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not buy produce"})
	}
}
