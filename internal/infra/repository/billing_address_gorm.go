package repository

import (
	"app/internal/domain/model"
	"context"

	"gorm.io/gorm"
)

type BillingAddressGormRepository struct {
	db *gorm.DB
}

// DI
func NewBillingAddressGormRepository(db *gorm.DB) *BillingAddressGormRepository {
	return &BillingAddressGormRepository{db: db}
}

func (r *BillingAddressGormRepository) Create(ctx context.Context, a model.BillingAddress) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return 0, err
	}
	return a.ID, nil
}
