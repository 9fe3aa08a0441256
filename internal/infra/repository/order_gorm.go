package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// ユーザーのACTIVE注文を取得し、無ければ作成。
// ブラウザタブ2枚からの同時追加でもACTIVEが2つにならないよう、
// uniq_orders_active_user（db.Migrate参照）で片方の作成だけを通し、
// 負けた側は勝った行を読み直して1つに収束させる。
func (r *OrderGormRepository) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Order, bool, error) {
	var order model.Order
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND ordered = ?", userID, false).
			Order("id desc").
			First(&order).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newOrder := model.Order{
			UserID:      userID,
			Ordered:     false,
			OrderedDate: now,
		}

		//作成はSAVEPOINT内で行う。一意制約違反で外側のtxごと落とさないため
		createErr := tx.Transaction(func(tx2 *gorm.DB) error {
			return tx2.Create(&newOrder).Error
		})
		if createErr != nil {
			if isUniqueViolation(createErr) {
				return tx.
					Where("user_id = ? AND ordered = ?", userID, false).
					Order("id desc").
					First(&order).Error
			}
			return createErr
		}

		order = newOrder
		created = true
		return nil
	})

	if err != nil {
		return model.Order{}, false, err
	}
	return order, created, nil
}

// ACTIVE注文を明細込みで取得
func (r *OrderGormRepository) FindActiveByUserID(ctx context.Context, userID int64) (model.Order, error) {
	return r.findActive(r.db.WithContext(ctx), userID)
}

// ACTIVE注文を行ロック付きで取得。決済確定の読みはこちらを使う。
// 2本目のSettleはこのロック待ちの後に ordered=true を見て404で抜ける。
func (r *OrderGormRepository) FindActiveByUserIDForUpdate(ctx context.Context, userID int64) (model.Order, error) {
	return r.findActive(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		userID,
	)
}

func (r *OrderGormRepository) findActive(tx *gorm.DB, userID int64) (model.Order, error) {
	var order model.Order

	err := tx.
		Preload("Items.Item").
		Where("user_id = ? AND ordered = ?", userID, false).
		Order("id desc").
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// membershipに明細を追加
func (r *OrderGormRepository) AddItem(ctx context.Context, orderID int64, orderItemID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{ID: orderID}).
		Association("Items").
		Append(&model.OrderItem{ID: orderItemID})
}

// membershipから明細を外す。OrderItem行そのものは消さない
func (r *OrderGormRepository) RemoveItem(ctx context.Context, orderID int64, orderItemID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{ID: orderID}).
		Association("Items").
		Delete(&model.OrderItem{ID: orderItemID})
}

// 課金前の照合キーを保存
func (r *OrderGormRepository) SetSettlementKey(ctx context.Context, orderID int64, key string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("settlement_key", key)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ordered=false の行だけ確定させる。
// 既に確定済みなら0件更新＝ErrNotFound（二重確定の防止）。
func (r *OrderGormRepository) MarkSettled(ctx context.Context, orderID int64, paymentID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND ordered = ?", orderID, false).
		Updates(map[string]interface{}{
			"ordered":    true,
			"payment_id": paymentID,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
