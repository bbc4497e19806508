// Package messaging delivers payment confirmation events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ficommerce/payment-service/internal/config"
	"github.com/ficommerce/payment-service/internal/domain"
)

// MessageWriter is the slice of kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer serializes confirmation events and writes them to the
// configured topic. Messages are keyed by payment reference so all
// events for one payment land on the same partition, in order.
type Producer struct {
	writer MessageWriter
	topic  string
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		topic: cfg.Topic,
	}
}

func (p *Producer) Send(ctx context.Context, event domain.PaymentConfirmationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal confirmation event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PaymentReference),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
