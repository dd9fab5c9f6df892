package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	accounthandler "market_backend/internal/feature/account/transport/handler"
	cataloghandler "market_backend/internal/feature/catalog/transport/handler"
	"market_backend/internal/platform/http/handler"
	"market_backend/internal/platform/token"
)

func NewRouter(authHandler *accounthandler.AuthHandler, catalog *cataloghandler.CatalogHandler,
	validator token.SessionValidator, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// CORS: フロントエンドは別オリジンで動くため、クッキー付きリクエストを許可する
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規アカウント登録
	r.POST("/register", authHandler.Register)
	// ログイン（セッション発行）
	r.POST("/login", authHandler.Login)
	// ログアウトは冪等なので認証ミドルウェアの外に置く
	r.POST("/logout", authHandler.Logout)
	// 出品一覧の取得は公開
	r.GET("/get_all_produce", catalog.ListAll)

	// 認証必須のルート
	// セッションストアを毎回参照するため、ログアウト済みトークンはここで弾かれる
	auth := r.Group("/")
	auth.Use(token.AuthRequired(validator))
	{
		auth.POST("/add_produce_type", catalog.AddProduce)
		auth.POST("/buy_produce", catalog.BuyProduce)
	}

	return r
}
