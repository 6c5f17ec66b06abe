// Package service implements the storefront use cases on top of the
// repository interfaces.
package service

import (
	"context"
	"log/slog"

	"github.com/mikii-john/e-commerce-backend/internal/domain"
	"github.com/mikii-john/e-commerce-backend/internal/repository"
)

// CatalogService serves product catalogue lookups.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogService creates a catalogue service.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

// GetAll returns the full catalogue.
func (s *CatalogService) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// GetByID returns a single product.
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetByCategory returns the products in a category. The match is
// case-insensitive; an unknown category yields an empty slice, not an error.
func (s *CatalogService) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, category)
}
