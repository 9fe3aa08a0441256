package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文。ordered=false の間はカートとして振る舞う。
// 1ユーザーにつき ordered=false は1つ（部分一意インデックス uniq_orders_active_user で担保）。
// ordered は false→true へ一度だけ遷移し、戻らない。
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//カート内の明細（membership）。行の削除とは独立に外せる
	Items []OrderItem `gorm:"many2many:order_memberships;" json:"items"`

	Ordered     bool      `gorm:"not null;default:false;index" json:"ordered"`
	OrderedDate time.Time `gorm:"not null" json:"ordered_date"`

	//請求先住所（現状チェックアウトでは紐付けない）
	BillingAddressID *int64 `gorm:"index" json:"billing_address_id,omitempty"`

	//決済成功後にのみ設定される
	PaymentID *int64 `gorm:"index" json:"payment_id,omitempty"`

	//課金前に払い出す照合キー。ゲートウェイ側と突き合わせ可能にする
	SettlementKey string `gorm:"type:varchar(64);index" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 明細合計。正確な10進演算で出す（浮動小数は使わない）
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
