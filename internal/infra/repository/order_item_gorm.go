package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 未確定の (user, item) 行を取得し、無ければ quantity=1 で作成。
// 同時追加はuniq_order_items_active_user_item（db.Migrate参照）で片方だけ通し、
// 負けた側は勝った行を読み直す。
func (r *OrderItemGormRepository) GetOrCreateActive(ctx context.Context, userID int64, itemID int64) (model.OrderItem, bool, error) {
	var item model.OrderItem
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND item_id = ? AND ordered = ?", userID, itemID, false).
			First(&item).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newItem := model.OrderItem{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: 1,
			Ordered:  false,
		}

		//作成はSAVEPOINT内で行う。一意制約違反で外側のtxごと落とさないため
		createErr := tx.Transaction(func(tx2 *gorm.DB) error {
			return tx2.Create(&newItem).Error
		})
		if createErr != nil {
			if isUniqueViolation(createErr) {
				return tx.
					Where("user_id = ? AND item_id = ? AND ordered = ?", userID, itemID, false).
					First(&item).Error
			}
			return createErr
		}

		item = newItem
		created = true
		return nil
	})

	if err != nil {
		return model.OrderItem{}, false, err
	}
	return item, created, nil
}

// 明細の数量を更新
func (r *OrderItemGormRepository) UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ?", orderItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *OrderItemGormRepository) DeleteByID(ctx context.Context, orderItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderItem{}, orderItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 決済確定時に明細をまとめて ordered=true にする
func (r *OrderItemGormRepository) MarkOrderedByIDs(ctx context.Context, orderItemIDs []int64) error {
	if len(orderItemIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id IN ?", orderItemIDs).
		Update("ordered", true).Error
}
