package model

import "time"

// 請求先住所。チェックアウトの検証を通った内容を保存する。
type BillingAddress struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	StreetAddress    string `gorm:"type:varchar(255);not null" json:"street_address"`
	ApartmentAddress string `gorm:"type:varchar(255);not null" json:"apartment_address"`

	//ISO 3166-1 alpha-2
	Country string `gorm:"type:varchar(2);not null" json:"country"`
	Zip     string `gorm:"type:varchar(20);not null" json:"zip"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
