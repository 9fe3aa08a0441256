package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderItemRepository interface {
	//未確定の行を取得し、無ければ quantity=1 で作成。行ロック付き
	GetOrCreateActive(ctx context.Context, userID int64, itemID int64) (model.OrderItem, bool, error)

	UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error
	DeleteByID(ctx context.Context, orderItemID int64) error

	//決済確定時に明細をまとめて ordered=true にする
	MarkOrderedByIDs(ctx context.Context, orderItemIDs []int64) error
}
