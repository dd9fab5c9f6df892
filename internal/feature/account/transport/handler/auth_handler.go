// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/account/transport/http/dto"
	"market_backend/internal/feature/account/usecase"
	"market_backend/internal/platform/token"
)

// AccountUsecase は認証・アカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	// Register は指定された内容で新規アカウントを登録します。
	Register(ctx context.Context, name, password, email, address string) error
	// Login はアカウントを認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error)
	// Logout はトークンが参照するセッションを失効させます。冪等です。
	Logout(ctx context.Context, token string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AccountUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	accounts  AccountUsecase
	cookieTTL time.Duration
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// cookieTTLはセッションクッキーのMaxAgeに使用します。
func NewAuthHandler(accounts AccountUsecase, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookieTTL: cookieTTL}
}

// Register はアカウント登録APIエンドポイントを処理します。
// - 不正なメール・フィールド欠落は400を返却
// - 住所重複は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	// パスワードはログに出さない
	err := h.accounts.Register(c.Request.Context(), req.Name, req.Password, req.Email, req.Address)
	switch {
	case err == nil:
		slog.Info("account registered", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, gin.H{"success": true})
	case errors.Is(err, usecase.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "EMAIL IS NOT VALID"})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ALL FIELDS ARE REQUIRED"})
	case errors.Is(err, usecase.ErrAddressAlreadyExists):
		slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "ADDRESS ALREADY EXISTS"})
	default:
		// ストレージ障害のみ運用ログに記録し、内部詳細は公開しない
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "registration failed"})
	}
}

// Login はログインAPIエンドポイントを処理します。
// 成功時はセッショントークンをクッキーとレスポンスボディの両方で返します。
// 未検出とパスワード不一致はアカウント列挙防止のため同一メッセージで返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	tok, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	switch {
	case err == nil:
		slog.Info("login successful", "email", req.Email, "remote_addr", c.ClientIP())
		c.SetCookie(token.CookieName, tok, int(h.cookieTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "token": tok})
	case errors.Is(err, usecase.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "EMAIL IS NOT VALID"})
	case errors.Is(err, usecase.ErrAccountNotFound), errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "USER NOT FOUND"})
	default:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login failed"})
	}
}

// Logout はログアウトAPIエンドポイントを処理します。
// トークンが無い・無効な場合でも200で{"loggedout": true}を返します（冪等）。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	// ボディは{"logout": true}だが、フラグの値は使用しない
	_ = c.ShouldBindJSON(&req)

	if tok, ok := token.FromRequest(c); ok {
		if err := h.accounts.Logout(c.Request.Context(), tok); err != nil {
			// 失効の失敗はストレージ障害のみ。ログアウト自体は成功として扱わない
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "logout failed"})
			return
		}
	}
	// クッキーを破棄
	c.SetCookie(token.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"loggedout": true})
}
