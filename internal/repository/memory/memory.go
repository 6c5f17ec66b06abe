// Package memory implements the repositories over an in-process seed
// catalogue. It backs local development and tests where no remote store is
// available, and mirrors the store semantics: conditional stock decrements
// and not-found errors behave the same as the PostgREST implementation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
)

// SeedProducts returns the demo catalogue used when no remote store is
// configured.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Wireless Noise-Canceling Headphones",
			Price:       199.99,
			Description: "Premium over-ear headphones with active noise cancellation and 30-hour battery life.",
			Category:    "electronics",
			ImageURL:    "https://placehold.co/400",
			Stock:       25,
		},
		{
			ID:          2,
			Name:        "Minimalist Leather Watch",
			Price:       125.00,
			Description: "Elegant stainless steel watch with a genuine Italian leather strap.",
			Category:    "accessories",
			ImageURL:    "https://placehold.co/400",
			Stock:       40,
		},
		{
			ID:          3,
			Name:        "Smart Fitness Tracker",
			Price:       79.50,
			Description: "Track your steps, heart rate, and sleep with this sleek, waterproof fitness band.",
			Category:    "electronics",
			ImageURL:    "https://placehold.co/400",
			Stock:       60,
		},
		{
			ID:          4,
			Name:        "Organic Cotton Hoodie",
			Price:       55.00,
			Description: "Soft and sustainable hoodie made from 100% certified organic cotton.",
			Category:    "apparel",
			ImageURL:    "https://placehold.co/400",
			Stock:       80,
		},
		{
			ID:          5,
			Name:        "Portable Bluetooth Speaker",
			Price:       45.99,
			Description: "Compact speaker with rich bass and IPX7 waterproof rating for outdoor use.",
			Category:    "electronics",
			ImageURL:    "https://placehold.co/400",
			Stock:       35,
		},
		{
			ID:          6,
			Name:        "Ergonomic Mechanical Keyboard",
			Price:       149.00,
			Description: "Tactile mechanical switches and customizable RGB lighting for the ultimate typing experience.",
			Category:    "electronics",
			ImageURL:    "https://placehold.co/400",
			Stock:       20,
		},
	}
}

// ProductRepository keeps products in memory behind a mutex.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
}

// NewProductRepository creates a product repository preloaded with the given
// products. Pass SeedProducts() for the demo catalogue.
func NewProductRepository(products []domain.Product) *ProductRepository {
	m := make(map[int64]*domain.Product, len(products))
	for i := range products {
		p := products[i]
		m[p.ID] = &p
	}
	return &ProductRepository{products: m}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("Record not found.")
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DecrementStock checks and subtracts under one lock so concurrent orders
// cannot oversell.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok || p.Stock < quantity {
		return apperrors.InsufficientStock(productID)
	}
	p.Stock -= quantity
	return nil
}

func (r *ProductRepository) Ping(ctx context.Context) error {
	return nil
}

// OrderRepository keeps orders in memory behind a mutex.
type OrderRepository struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[int64]*domain.Order), nextID: 1}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("Record not found.")
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *OrderRepository) InsertHeader(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *order
	created.ID = r.nextID
	r.nextID++
	created.CreatedAt = time.Now().UTC()

	stored := created
	stored.Items = nil
	r.orders[created.ID] = &stored
	return &created, nil
}

func (r *OrderRepository) InsertItems(ctx context.Context, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range items {
		if items[i].ID == 0 {
			items[i].ID = int64(i + 1)
		}
		o, ok := r.orders[items[i].OrderID]
		if !ok {
			return apperrors.Reference("Reference error (foreign key constraint violation).")
		}
		o.Items = append(o.Items, items[i])
	}
	return nil
}
