package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 公開商品をカテゴリ絞り込み＋ページング付きで返す
func (r *ItemGormRepository) ListPublic(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Item{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("id desc").Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.Item{}, 0, err
	}

	return items, total, nil
}

// slugで商品を取得
func (r *ItemGormRepository) FindBySlug(ctx context.Context, slug string) (model.Item, error) {
	var item model.Item

	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}
