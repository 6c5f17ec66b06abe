// Package event publishes domain events for downstream consumers such as
// fulfilment and notification pipelines.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/pkg/kafka"
	"github.com/mikii-john/e-commerce-backend/pkg/logger"
)

const (
	// TopicOrderEvents carries order lifecycle events.
	TopicOrderEvents = "order.events"

	// EventOrderCreated is emitted after an order is placed.
	EventOrderCreated = "order.created"

	source = "storefront-backend"
)

// orderCreatedPayload is the data section of an order.created event.
type orderCreatedPayload struct {
	OrderID       int64              `json:"order_id"`
	OrderNumber   string             `json:"order_number"`
	CustomerEmail string             `json:"customer_email"`
	TotalAmount   float64            `json:"total_amount"`
	Items         []domain.OrderItem `json:"items"`
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer creates an event producer on top of the given Kafka producer.
func NewProducer(producer *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: logger}
}

// OrderCreated publishes an order.created event.
func (p *Producer) OrderCreated(ctx context.Context, order *domain.Order) error {
	evt, err := kafka.NewEvent(EventOrderCreated, fmt.Sprintf("%d", order.ID), "order", source, orderCreatedPayload{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
	})
	if err != nil {
		return fmt.Errorf("build order.created event: %w", err)
	}

	if corrID := logger.CorrelationIDFromContext(ctx); corrID != "" {
		evt.WithCorrelationID(corrID)
	}

	return p.producer.Publish(ctx, TopicOrderEvents, evt)
}

// NoopPublisher discards events. Used when Kafka is not configured.
type NoopPublisher struct{}

// OrderCreated is a no-op.
func (NoopPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return nil
}
