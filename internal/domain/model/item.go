package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品カテゴリ
type ItemCategory string

const (
	CategoryShirt   ItemCategory = "S"
	CategorySport   ItemCategory = "SW"
	CategoryOutwear ItemCategory = "OW"
)

// 一覧バッジの表示種別
type ItemLabel string

const (
	LabelPrimary   ItemLabel = "P"
	LabelSecondary ItemLabel = "S"
	LabelDanger    ItemLabel = "D"
)

// 商品。この層からは読み取り専用
type Item struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`

	//通常価格
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//セール価格（無ければnull）
	DiscountPrice *decimal.Decimal `gorm:"type:numeric(10,2)" json:"discount_price,omitempty"`

	Category ItemCategory `gorm:"type:varchar(2);not null" json:"category"`
	Label    ItemLabel    `gorm:"type:varchar(1);not null" json:"label"`

	//URL用の一意なキー
	Slug string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`

	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// セール価格があればそちら、無ければ通常価格
func (i Item) EffectivePrice() decimal.Decimal {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}
