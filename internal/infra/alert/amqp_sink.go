package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	appalert "app/internal/alert"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ops_alerts"
	ExchangeType = "topic"
)

// 接続してexchangeを宣言する。
// コンテナ起動直後はブローカーが先に立っていないことがあるので数回リトライする。
func SetupConn(url string) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Printf("failed to connect to RabbitMQ (attempt %d): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	//durableなtopic exchange
	err = ch.ExchangeDeclare(ExchangeName, ExchangeType, true, false, false, false, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, ch, nil
}

// ops_alertsへ警報を流すシンク
type AMQPSink struct {
	ch *amqp.Channel
}

// DI
func NewAMQPSink(ch *amqp.Channel) *AMQPSink {
	return &AMQPSink{ch: ch}
}

func (s *AMQPSink) Publish(ctx context.Context, a appalert.Alert) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not marshal alert: %w", err)
	}

	//routing keyは alert.<kind>（例: alert.settlement_inconsistent）
	routingKey := fmt.Sprintf("alert.%s", a.Kind)

	return s.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
