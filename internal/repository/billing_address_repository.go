package repository

import (
	"app/internal/domain/model"
	"context"
)

type BillingAddressRepository interface {
	Create(ctx context.Context, a model.BillingAddress) (int64, error)
}
