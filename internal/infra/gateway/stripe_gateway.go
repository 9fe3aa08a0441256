package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	appgw "app/internal/gateway"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// APIキーはプロセス全体のグローバルではなく、ここで明示的に受け取る。
type StripeConfig struct {
	SecretKey string
	Timeout   time.Duration
}

type StripeGateway struct {
	api *client.API
}

// DI
func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sc := &client.API{}
	sc.Init(cfg.SecretKey, stripe.NewBackends(&http.Client{Timeout: timeout}))

	return &StripeGateway{api: sc}
}

// 1回課金する。カード拒否はDeclinedError、それ以外はTransientErrorに分類する。
func (g *StripeGateway) Charge(ctx context.Context, req appgw.ChargeRequest) (appgw.Charge, error) {
	params := &stripe.ChargeParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(req.IdempotencyKey),
		},
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
	}
	if err := params.SetSource(req.SourceToken); err != nil {
		return appgw.Charge{}, &appgw.DeclinedError{Message: "invalid payment source"}
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Type == stripe.ErrorTypeCard {
			return appgw.Charge{}, &appgw.DeclinedError{
				Code:    string(sErr.Code),
				Message: sErr.Msg,
			}
		}
		return appgw.Charge{}, &appgw.TransientError{Err: err}
	}

	return appgw.Charge{ID: ch.ID}, nil
}
