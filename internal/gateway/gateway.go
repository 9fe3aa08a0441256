package gateway

import (
	"context"
	"errors"
	"fmt"
)

// 課金リクエスト。金額はマイナー単位（USDならセント）。
type ChargeRequest struct {
	AmountMinor int64
	Currency    string

	//クライアント側トークナイズで得たトークン。取引ごとに受け取る
	SourceToken string

	//同じキーの課金はゲートウェイ側で1回に畳まれる
	IdempotencyKey string
}

type Charge struct {
	ID string
}

// 決済ゲートウェイは「1回課金する」操作だけの約束。
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
}

// カード拒否など。messageはそのまま利用者に見せられる
type DeclinedError struct {
	Code    string
	Message string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("charge declined (%s): %s", e.Code, e.Message)
}

// 通信断・タイムアウトなどの一時故障。注文状態は変えない
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("gateway transient failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func AsDeclined(err error) (*DeclinedError, bool) {
	var de *DeclinedError
	ok := errors.As(err, &de)
	return de, ok
}
