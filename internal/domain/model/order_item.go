package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// (user, item) ごとの数量台帳。
// 未確定（ordered=false）の行は同じ (user, item) で最大1つ
// （部分一意インデックス uniq_order_items_active_user_item で担保）。
type OrderItem struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index:idx_order_items_user_item" json:"user_id"`
	ItemID int64 `gorm:"not null;index:idx_order_items_user_item" json:"item_id"`
	Item   Item  `gorm:"foreignKey:ItemID" json:"item"`

	Quantity int64 `gorm:"not null;default:1" json:"quantity"`

	//注文確定済みか
	Ordered bool `gorm:"not null;default:false;index" json:"ordered"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 数量 × 実効価格
func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.Item.EffectivePrice().Mul(decimal.NewFromInt(oi.Quantity))
}
