package db

import (
	"fmt"

	"app/internal/config"
	"app/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
		cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// AutoMigrateでは張れない部分一意インデックス。
// ACTIVE（ordered=false）の一意性はアプリのロックではなくここで担保し、
// 同時作成の敗者はget-or-createの再検索に落ちる。
var partialUniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_orders_active_user ON orders (user_id) WHERE NOT ordered`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_order_items_active_user_item ON order_items (user_id, item_id) WHERE NOT ordered`,
}

// Migrate はスキーマと部分一意インデックスを適用する。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Item{},
		&model.OrderItem{},
		&model.Order{},
		&model.Payment{},
		&model.BillingAddress{},
	); err != nil {
		return err
	}

	for _, stmt := range partialUniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
