package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	"app/internal/notice"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase はカート（ACTIVEな注文）の業務ロジックです。
// 注文・台帳・membershipをまたぐのでTransactionManager越しに操作します。
type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type CartLine struct {
	OrderItemID int64           `json:"order_item_id"`
	ItemID      int64           `json:"item_id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CartOutput struct {
	OrderID int64           `json:"order_id"`
	Lines   []CartLine      `json:"lines"`
	Total   decimal.Decimal `json:"total"`
	Notices []notice.Notice `json:"notices"`
}

// AddToCart はslugの商品を1つ追加する（既にあれば数量+1）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, slug string) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if slug == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	var out CartOutput
	msgs := &notice.Buffer{}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.Items().FindBySlug(ctx, slug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//ACTIVE注文取得（無ければ作成）
		order, _, err := r.Orders().GetOrCreateActiveByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//未確定の台帳行を取得（無ければquantity=1で作成）
		orderItem, _, err := r.OrderItems().GetOrCreateActive(ctx, userID, item.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//既にカートのmemberかは明細込みで読み直して判定
		loaded, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		member := false
		for _, it := range loaded.Items {
			if it.ItemID == item.ID {
				member = true
				break
			}
		}

		if member {
			if err := r.OrderItems().UpdateQuantity(ctx, orderItem.ID, orderItem.Quantity+1); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			msgs.Info("This item quantity was updated")
		} else {
			//台帳行が既にあった場合は数量そのままでmemberに戻す
			if err := r.Orders().AddItem(ctx, order.ID, orderItem.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			msgs.Info("This item was added to your cart")
		}

		final, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = buildCartOutput(final, msgs)
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// RemoveFromCart はslugの商品をカートから丸ごと外し、台帳行も削除する。
// 注文や商品が無い場合はハード失敗にせず通知で返す（古いリンク耐性）。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, slug string) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if slug == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	var out CartOutput
	msgs := &notice.Buffer{}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.Items().FindBySlug(ctx, slug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			msgs.Warning("You do not have an active order")
			out = emptyCartOutput(msgs)
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		target, ok := findLine(order, item.ID)
		if !ok {
			msgs.Info("This item was not in your cart")
			out = buildCartOutput(order, msgs)
			return nil
		}

		//membershipを外して台帳行ごと削除（数量は見ない）
		if err := r.Orders().RemoveItem(ctx, order.ID, target.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().DeleteByID(ctx, target.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		msgs.Info("This item was removed from your cart.")

		final, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = buildCartOutput(final, msgs)
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// RemoveSingleItem はslugの商品を1つだけ減らす。
// quantity==1 のときはmembershipだけ外し、台帳行は消さない。
// RemoveFromCart（行ごと削除）との非対称は既存仕様のまま残している。
// 孤児行の扱いはプロダクト判断待ちで、勝手に寄せない。
func (u *CartUsecase) RemoveSingleItem(ctx context.Context, userID int64, slug string) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if slug == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	var out CartOutput
	msgs := &notice.Buffer{}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.Items().FindBySlug(ctx, slug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			msgs.Warning("You do not have an active order")
			out = emptyCartOutput(msgs)
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		target, ok := findLine(order, item.ID)
		if !ok {
			msgs.Info("This item was not in your cart")
			out = buildCartOutput(order, msgs)
			return nil
		}

		if target.Quantity > 1 {
			if err := r.OrderItems().UpdateQuantity(ctx, target.ID, target.Quantity-1); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			if err := r.Orders().RemoveItem(ctx, order.ID, target.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		msgs.Info("This item quantity was updated.")

		final, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = buildCartOutput(final, msgs)
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// GetOrderSummary はACTIVE注文の明細と合計を返す。
func (u *CartUsecase) GetOrderSummary(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order does not exist")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = buildCartOutput(order, &notice.Buffer{})
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func findLine(order model.Order, itemID int64) (model.OrderItem, bool) {
	for _, it := range order.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return model.OrderItem{}, false
}

func buildCartOutput(order model.Order, msgs *notice.Buffer) CartOutput {
	lines := make([]CartLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, CartLine{
			OrderItemID: it.ID,
			ItemID:      it.ItemID,
			Slug:        it.Item.Slug,
			Title:       it.Item.Title,
			Price:       it.Item.EffectivePrice(),
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}

	return CartOutput{
		OrderID: order.ID,
		Lines:   lines,
		Total:   order.Total(),
		Notices: msgs.List(),
	}
}

func emptyCartOutput(msgs *notice.Buffer) CartOutput {
	return CartOutput{
		Lines:   []CartLine{},
		Total:   decimal.Zero,
		Notices: msgs.List(),
	}
}
