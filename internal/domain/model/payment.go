package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 決済記録。成功した課金1回につき1行、作成後は不変。
type Payment struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//ゲートウェイが返す課金ID
	StripeChargeID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"stripe_charge_id"`

	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	UserID int64           `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
