// Package rediscache decorates a ProductRepository with a Redis read-through
// cache. Reads are served from cache when possible; a cache outage degrades to
// the underlying repository rather than failing the request. Stock decrements
// invalidate the affected product so stale quantities are short-lived.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/internal/repository"
)

const (
	allProductsKey = "products:all"
	productKeyFmt  = "products:id:%d"
	categoryKeyFmt = "products:category:%s"
)

// categoryKey lowercases the category so that a listing cached under the
// caller's casing and an invalidation keyed on the product's canonical
// category land on the same entry.
func categoryKey(category string) string {
	return fmt.Sprintf(categoryKeyFmt, strings.ToLower(category))
}

// ProductRepository wraps another product repository with Redis caching.
type ProductRepository struct {
	next   repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProductRepository creates the caching decorator.
func NewProductRepository(next repository.ProductRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if r.getCached(ctx, allProductsKey, &cached) {
		return cached, nil
	}

	products, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.setCached(ctx, allProductsKey, products)
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := fmt.Sprintf(productKeyFmt, id)

	var cached domain.Product
	if r.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.setCached(ctx, key, product)
	return product, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	key := categoryKey(category)

	var cached []domain.Product
	if r.getCached(ctx, key, &cached) {
		return cached, nil
	}

	products, err := r.next.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	r.setCached(ctx, key, products)
	return products, nil
}

// DecrementStock delegates to the underlying repository and, on success,
// drops every cache entry that could hold the stale stock figure.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	if err := r.next.DecrementStock(ctx, productID, quantity); err != nil {
		return err
	}

	keys := []string{allProductsKey, fmt.Sprintf(productKeyFmt, productID)}
	if product, err := r.next.GetByID(ctx, productID); err == nil && product.Category != "" {
		keys = append(keys, categoryKey(product.Category))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache invalidation failed",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (r *ProductRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *ProductRepository) getCached(ctx context.Context, key string, target any) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.WarnContext(ctx, "cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		r.logger.WarnContext(ctx, "cache entry corrupt, ignoring",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (r *ProductRepository) setCached(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
