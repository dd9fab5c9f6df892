package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	accountadapters "market_backend/internal/feature/account/adapters"
	accountentity "market_backend/internal/feature/account/domain/entity"
	catalogentity "market_backend/internal/feature/catalog/domain/entity"
)

// Open は指定されたDSNでPostgresに接続し、gorm.DBを返します。
// コンテナ起動直後などDBが立ち上がるまで最大60秒リトライします。
// TranslateErrorを有効にするため、一意制約違反はgorm.ErrDuplicatedKeyになります。
func Open(dsn string, runMigrations bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if runMigrations {
		// マイグレーション（Account, ProduceListing, Session）
		if err := db.AutoMigrate(
			&accountentity.Account{},
			&catalogentity.ProduceListing{},
			&accountadapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
