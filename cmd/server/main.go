package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/router"
	"market_backend/internal/config"
	accountadapters "market_backend/internal/feature/account/adapters"
	accounthandler "market_backend/internal/feature/account/transport/handler"
	accountusecase "market_backend/internal/feature/account/usecase"
	catalogadapters "market_backend/internal/feature/catalog/adapters"
	cataloghandler "market_backend/internal/feature/catalog/transport/handler"
	catalogusecase "market_backend/internal/feature/catalog/usecase"
	"market_backend/internal/platform/cache"
	infradb "market_backend/internal/platform/db"
	infraredis "market_backend/internal/platform/redis"
	"market_backend/internal/platform/session"
	"market_backend/internal/platform/token"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := infradb.Open(cfg.DatabaseDSN, cfg.RunMigrations)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to DB sessions and uncached reads.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	accountRepo := accountadapters.NewAccountGorm(db)
	listingRepo := catalogadapters.NewListingGorm(db)

	// セッションストア: Redisが使えればRedis、落ちていればDBフォールバック
	var sessionRepo accountusecase.SessionRepository
	if rdb != nil {
		sessionRepo = session.NewSessionRedis(rdb, "session")
	} else {
		gormSessions := accountadapters.NewSessionGorm(db)
		sessionRepo = gormSessions
		// DBセッションはTTLで消えないため、定期的に掃除する
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				n, err := gormSessions.DeleteExpired(context.Background())
				if err != nil {
					slog.Error("session cleanup failed", "error", err)
					continue
				}
				if n > 0 {
					slog.Info("expired sessions deleted", "count", n)
				}
			}
		}()
	}

	// 公開の出品一覧はRedisキャッシュでラップ（書き込み時に無効化）
	cachedListingRepo := cache.NewCachingListingRepository(rdb, cfg.ListingCacheTTL, listingRepo, "listings")

	// Token
	tokens := token.NewGenerator(cfg.SessionSecret, cfg.SessionTTL)

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(accountRepo, sessionRepo, tokens, cfg.SessionTTL)
	catalogUC := catalogusecase.NewCatalogUsecase(cachedListingRepo)

	// Handler
	authH := accounthandler.NewAuthHandler(accountUC, cfg.SessionTTL)
	catalogH := cataloghandler.NewCatalogHandler(catalogUC)

	// ルータ生成（CORS込み）
	r := router.NewRouter(authH, catalogH, accountUC, cfg.AllowedOrigins)

	// SESSION_SECRETチェック（開発中の注意喚起）
	if cfg.SessionSecret == "" {
		log.Println("[WARN] SESSION_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(fmt.Sprintf(":%d", cfg.AppPort)); err != nil {
		log.Fatal(err)
	}
}
