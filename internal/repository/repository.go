// Package repository defines the persistence interfaces for the storefront.
// Two implementations exist: a PostgREST-backed store and an in-memory seed
// catalogue. The active one is chosen once at startup.
package repository

import (
	"context"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
)

// ProductRepository provides catalogue reads and stock mutations.
type ProductRepository interface {
	// List returns all products.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID returns one product, or an error wrapping ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// ListByCategory returns products whose category matches case-insensitively.
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// DecrementStock atomically reduces a product's stock by quantity. It
	// fails with an error wrapping ErrInsufficientStock when the product is
	// missing or holds fewer units than requested; stock never goes negative.
	DecrementStock(ctx context.Context, productID int64, quantity int) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// OrderRepository provides order reads and the write primitives used during
// order assembly.
type OrderRepository interface {
	// List returns all orders with their line items.
	List(ctx context.Context) ([]domain.Order, error)

	// GetByID returns one order with its line items, or an error wrapping
	// ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// InsertHeader persists the order header and returns it with the
	// store-assigned ID and creation timestamp.
	InsertHeader(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// InsertItems persists the order's line items.
	InsertItems(ctx context.Context, items []domain.OrderItem) error
}
