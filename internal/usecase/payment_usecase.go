package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/alert"
	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/notice"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 決済ゲートウェイの識別子
const (
	GatewayStripe = "stripe"
	GatewayPaypal = "paypal"
)

// 照合キーの採番
type IDGenerator interface {
	NewID() string
}

// PaymentUsecase はACTIVE注文の決済確定（settlement）を行います。
type PaymentUsecase struct {
	tx     repo.TransactionManager
	gw     gateway.Gateway
	alerts alert.Sink
	idGen  IDGenerator
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	gw gateway.Gateway,
	alerts alert.Sink,
	idGen IDGenerator,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:     tx,
		gw:     gw,
		alerts: alerts,
		idGen:  idGen,
	}
}

type SettleInput struct {
	Gateway string

	//取引ごとにクライアントから受け取るトークン。固定値は持たない
	SourceToken string
}

type SettleOutput struct {
	OrderID   int64           `json:"order_id"`
	PaymentID int64           `json:"payment_id"`
	ChargeID  string          `json:"charge_id"`
	Amount    decimal.Decimal `json:"amount"`
	Notices   []notice.Notice `json:"notices"`
}

// Settle はACTIVE注文に課金し、Payment作成と注文確定を1コミットで行う。
// 確定済み注文に対してはACTIVEが見つからず404になる（二重課金しない）。
func (u *PaymentUsecase) Settle(ctx context.Context, userID int64, in SettleInput) (SettleOutput, error) {
	if userID <= 0 {
		return SettleOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Gateway != GatewayStripe {
		//paypalも含め、未対応は無言フォールスルーにせずここで弾く
		return SettleOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported payment gateway")
	}
	if strings.TrimSpace(in.SourceToken) == "" {
		return SettleOutput{}, NewHTTPError(http.StatusBadRequest, "missing payment token")
	}

	//課金前に注文内容と照合キーを確定させる
	var (
		orderID   int64
		memberIDs []int64
		total     decimal.Decimal
		key       string
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック付きで読む。同時Settleはここで直列化され、
		//後続は確定済みを見てACTIVEなし＝404で抜ける
		order, err := r.Orders().FindActiveByUserIDForUpdate(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(order.Items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		orderID = order.ID
		for _, it := range order.Items {
			memberIDs = append(memberIDs, it.ID)
		}
		total = order.Total()

		//キーはcharge前に永続化する。コミット失敗時もゲートウェイと突き合わせられる
		key = order.SettlementKey
		if key == "" {
			key = u.idGen.NewID()
			if err := r.Orders().SetSettlementKey(ctx, orderID, key); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return SettleOutput{}, err
	}

	//マイナー単位（セント）へ変換
	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	charge, err := u.gw.Charge(ctx, gateway.ChargeRequest{
		AmountMinor:    amountMinor,
		Currency:       "usd",
		SourceToken:    in.SourceToken,
		IdempotencyKey: key,
	})
	if err != nil {
		if declined, ok := gateway.AsDeclined(err); ok {
			//拒否理由はそのまま利用者へ。注文は未決済のまま、Paymentも作らない
			return SettleOutput{}, NewHTTPError(http.StatusPaymentRequired, declined.Message)
		}
		//タイムアウト含む一時故障。注文は変えない
		return SettleOutput{}, NewHTTPError(http.StatusBadGateway, "payment gateway unavailable")
	}

	//Payment作成・注文確定・台帳確定を単一コミットで行う
	var paymentID int64
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Payments().Create(ctx, model.Payment{
			StripeChargeID: charge.ID,
			Amount:         total,
			UserID:         userID,
		})
		if err != nil {
			return err
		}
		if err := r.Orders().MarkSettled(ctx, orderID, id); err != nil {
			return err
		}
		if err := r.OrderItems().MarkOrderedByIDs(ctx, memberIDs); err != nil {
			return err
		}
		paymentID = id
		return nil
	})
	if err != nil {
		//課金済みなのに確定を記録できていない。利用者だけでなく運用側にも必ず知らせる
		_ = u.alerts.Publish(ctx, alert.Alert{
			Kind:          alert.KindSettlementInconsistent,
			OrderID:       orderID,
			SettlementKey: key,
			ChargeID:      charge.ID,
			Message:       err.Error(),
		})
		return SettleOutput{}, NewHTTPError(http.StatusInternalServerError, "charge succeeded but settlement was not recorded")
	}

	msgs := &notice.Buffer{}
	msgs.Success("Your order was successful!")

	return SettleOutput{
		OrderID:   orderID,
		PaymentID: paymentID,
		ChargeID:  charge.ID,
		Amount:    total,
		Notices:   msgs.List(),
	}, nil
}
