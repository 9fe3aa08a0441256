package repository

import (
	"app/internal/domain/model"
	"context"
)

// 決済記録。作成のみで更新は無い。
type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (int64, error)
}
