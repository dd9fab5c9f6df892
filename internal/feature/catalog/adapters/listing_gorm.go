// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_backend/internal/feature/catalog/domain/entity"
	"market_backend/internal/feature/catalog/usecase"
)

// listingGorm はListingRepositoryインターフェースのGORM実装です。
type listingGorm struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingGorm)(nil)

// NewListingGorm は指定されたDB接続でlistingGormリポジトリの新しいインスタンスを生成します。
func NewListingGorm(db *gorm.DB) *listingGorm {
	return &listingGorm{db: db}
}

// Create は出品をデータベースに追加します。
// 同じ説明文の出品が既に存在する場合、usecase.ErrDescriptionTakenを返します。
// 一意性はユニークインデックスがトランザクション内で担保します。
func (r *listingGorm) Create(ctx context.Context, l *entity.ProduceListing) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDescriptionTaken
		}
		return err
	}
	return nil
}

// ListAll は挿入順（id昇順）にすべての出品を返します。
func (r *listingGorm) ListAll(ctx context.Context) ([]entity.ProduceListing, error) {
	var listings []entity.ProduceListing
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByID はIDで出品を取得します。
// 出品が存在しない場合、usecase.ErrListingNotFoundを返します。
func (r *listingGorm) FindByID(ctx context.Context, id uint) (*entity.ProduceListing, error) {
	var l entity.ProduceListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}
