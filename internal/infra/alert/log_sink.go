package alert

import (
	"context"
	"log"

	appalert "app/internal/alert"
)

// ブローカー未設定のときのフォールバック。標準ログに出すだけ。
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Publish(_ context.Context, a appalert.Alert) error {
	log.Printf("[ALERT] kind=%s order_id=%d settlement_key=%s charge_id=%s: %s",
		a.Kind, a.OrderID, a.SettlementKey, a.ChargeID, a.Message)
	return nil
}
