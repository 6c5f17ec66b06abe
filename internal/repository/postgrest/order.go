package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/internal/postgrest"
)

// orderRow mirrors the orders table with its embedded order_items relation.
type orderRow struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"order_number"`
	CustomerEmail string         `json:"customer_email"`
	TotalAmount   float64        `json:"total_amount"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Items         []orderItemRow `json:"order_items"`
}

type orderItemRow struct {
	ID        int64   `json:"id,omitempty"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (r orderRow) toDomain() domain.Order {
	order := domain.Order{
		ID:            r.ID,
		OrderNumber:   r.OrderNumber,
		CustomerEmail: r.CustomerEmail,
		TotalAmount:   r.TotalAmount,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return order
}

// OrderRepository persists orders in the remote store.
type OrderRepository struct {
	client *postgrest.Client
	logger *slog.Logger
	retry  postgrest.RetryOptions
}

// NewOrderRepository creates a store-backed order repository.
func NewOrderRepository(client *postgrest.Client, retry postgrest.RetryOptions, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{client: client, logger: logger, retry: retry}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("orders").Select("*, order_items(*)").Order("created_at.desc").Get(ctx)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("orders").Select("*, order_items(*)").Eq("id", id).Single().Get(ctx)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var row orderRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode order %d: %w", id, err)
	}
	order := row.toDomain()
	return &order, nil
}

func (r *OrderRepository) InsertHeader(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	payload := map[string]any{
		"order_number":   order.OrderNumber,
		"customer_email": order.CustomerEmail,
		"total_amount":   order.TotalAmount,
		"status":         order.Status,
	}

	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("orders").Single().Insert(ctx, payload)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var row orderRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode inserted order: %w", err)
	}
	created := row.toDomain()
	created.Items = order.Items
	return &created, nil
}

func (r *OrderRepository) InsertItems(ctx context.Context, items []domain.OrderItem) error {
	rows := make([]orderItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, orderItemRow{
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	_, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("order_items").Insert(ctx, rows)
	})
	if err != nil {
		return postgrest.Classify(err)
	}
	return nil
}
