package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/internal/repository"
	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
)

// EventPublisher emits domain events after state changes. Publishing is best
// effort: a broker outage never fails an order that is already persisted.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}

// CreateOrderRequest is the validated input for placing an order.
type CreateOrderRequest struct {
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	Items         []domain.OrderLine `json:"items" validate:"required,min=1,dive"`
}

// OrderService places and reads orders.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	events   EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderService creates an order service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, events EventPublisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAll returns all orders with their line items, newest first.
func (s *OrderService) GetAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// GetByID returns one order with its line items.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// Create places an order. Items are validated against the catalogue in request
// order and the first failure aborts the whole request before anything is
// written. Each item snapshots the product's current name and price, so later
// catalogue edits do not change the order.
//
// Persistence runs as header, then items, then per-item stock decrements.
// These are separate store calls, not one transaction: a failure partway
// leaves earlier writes in place and surfaces the error. Decrements themselves
// are conditional in the store, so stock never goes below zero even when
// orders race.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	items, total, err := s.validateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	header := &domain.Order{
		OrderNumber:   domain.NewOrderNumber(s.now()),
		CustomerEmail: req.CustomerEmail,
		TotalAmount:   total,
		Status:        domain.OrderStatusPending,
	}

	created, err := s.orders.InsertHeader(ctx, header)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}
	if err := s.orders.InsertItems(ctx, items); err != nil {
		return nil, err
	}
	created.Items = items

	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.ErrorContext(ctx, "stock decrement failed after order insert",
				slog.Int64("order_id", created.ID),
				slog.Int64("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	if err := s.events.OrderCreated(ctx, created); err != nil {
		s.logger.WarnContext(ctx, "order.created publish failed",
			slog.Int64("order_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", created.ID),
		slog.String("order_number", created.OrderNumber),
		slog.Float64("total_amount", created.TotalAmount),
		slog.Int("items", len(created.Items)),
	)

	return created, nil
}

// validateItems resolves each requested line against the catalogue, builds the
// snapshot items and computes the rounded order total.
func (s *OrderService) validateItems(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	var total float64

	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, 0, apperrors.InsufficientStock(line.ProductID)
			}
			return nil, 0, err
		}
		if !product.InStock(line.Quantity) {
			return nil, 0, apperrors.InsufficientStock(line.ProductID)
		}

		total += product.Price * float64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	return items, domain.RoundMoney(total), nil
}
