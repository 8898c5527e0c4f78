// Package events publishes order lifecycle events for downstream
// consumers (notifications, analytics). Publication is best-effort; the
// order service never fails a request over it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	KindOrderCreated         = "order.created"
	KindStatusChanged        = "order.status_changed"
	KindPaymentStatusChanged = "order.payment_status_changed"
	KindOrderCancelled       = "order.cancelled"
)

type OrderCreated struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id"`
	OwnerID     string    `json:"owner_id"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}

type StatusChanged struct {
	Kind      string    `json:"kind"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

type PaymentStatusChanged struct {
	Kind      string    `json:"kind"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish sends one event keyed by order id so per-order ordering is
// preserved within a partition.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
