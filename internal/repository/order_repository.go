package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderRepository interface {
	//ACTIVE（ordered=false）な注文を取得し、無ければ作成。行ロック付き
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Order, bool, error)

	//ACTIVEな注文を明細（Items.Item）込みで取得
	FindActiveByUserID(ctx context.Context, userID int64) (model.Order, error)

	//同上＋行ロック。同時Settleをここで直列化する
	FindActiveByUserIDForUpdate(ctx context.Context, userID int64) (model.Order, error)

	//membershipの付け外し。OrderItem行の生死とは独立
	AddItem(ctx context.Context, orderID int64, orderItemID int64) error
	RemoveItem(ctx context.Context, orderID int64, orderItemID int64) error

	//課金前の照合キーを保存
	SetSettlementKey(ctx context.Context, orderID int64, key string) error

	//ordered=false の行だけを確定させる。0件更新は ErrNotFound
	MarkSettled(ctx context.Context, orderID int64, paymentID int64) error
}
