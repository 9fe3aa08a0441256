package alert

import "context"

const (
	//課金は成功したのにローカルの確定コミットに失敗した状態。
	//金を預かって履行を記録できていないので、握り潰してはいけない
	KindSettlementInconsistent = "settlement_inconsistent"
)

// 運用側へ流す警報。settlement_keyでゲートウェイと突き合わせできる。
type Alert struct {
	Kind          string `json:"kind"`
	OrderID       int64  `json:"order_id"`
	SettlementKey string `json:"settlement_key"`
	ChargeID      string `json:"charge_id"`
	Message       string `json:"message"`
}

type Sink interface {
	Publish(ctx context.Context, a Alert) error
}
