// Package postgrest implements the repositories against a PostgREST-compatible
// store API. Every remote call goes through the fixed-delay retry policy and
// has its store error classified before it leaves the package.
package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/internal/postgrest"
)

// ProductRepository reads the catalogue from the remote store.
type ProductRepository struct {
	client *postgrest.Client
	logger *slog.Logger
	retry  postgrest.RetryOptions
}

// NewProductRepository creates a store-backed product repository.
func NewProductRepository(client *postgrest.Client, retry postgrest.RetryOptions, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{client: client, logger: logger, retry: retry}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("products").Select("*").Order("id.asc").Get(ctx)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("products").Select("*").Eq("id", id).Single().Get(ctx)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &product, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	data, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.From("products").Select("*").Ilike("category", category).Order("id.asc").Get(ctx)
	})
	if err != nil {
		return nil, postgrest.Classify(err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products for category %q: %w", category, err)
	}
	return products, nil
}

// DecrementStock calls the decrement_stock stored procedure, which performs
// the check-and-subtract in one statement. The procedure raises when stock
// would go negative, which the classifier surfaces as an insufficient stock
// conflict.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	_, err := postgrest.WithRetry(ctx, r.logger, r.retry, func(ctx context.Context) (json.RawMessage, error) {
		return r.client.Rpc(ctx, "decrement_stock", map[string]any{
			"p_product_id": productID,
			"p_quantity":   quantity,
		})
	})
	if err != nil {
		return postgrest.Classify(err)
	}
	return nil
}

// Ping issues a cheap count against the products table. A missing relation is
// a schema problem worth surfacing, but an empty table is healthy.
func (r *ProductRepository) Ping(ctx context.Context) error {
	_, err := r.client.From("products").Count(ctx)
	if err != nil {
		var storeErr *postgrest.Error
		if errors.As(err, &storeErr) && storeErr.Code == postgrest.CodeNoRows {
			return nil
		}
		return postgrest.Classify(err)
	}
	return nil
}
