// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_backend/internal/feature/account/domain/entity"
	"market_backend/internal/feature/account/usecase"
)

// accountGorm はAccountRepositoryインターフェースのGORM実装です。
// 本番はPostgres、テストはSQLiteで動作します。
type accountGorm struct {
	db *gorm.DB
}

// accountGormがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountGorm は指定されたgorm.DB接続でaccountGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// Create はアカウントをデータベースに追加します。
// 同じ住所のアカウントが既に存在する場合、usecase.ErrAddressAlreadyExistsを返します。
// 重複判定はTranslateError有効時のgorm.ErrDuplicatedKeyに依存します。
func (r *accountGorm) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAddressAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
