package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikii-john/e-commerce-backend/internal/repository/memory"
	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
)

func TestCatalogService_GetAll(t *testing.T) {
	svc := NewCatalogService(memory.NewProductRepository(memory.SeedProducts()), newTestLogger())

	products, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestCatalogService_GetByID(t *testing.T) {
	svc := NewCatalogService(memory.NewProductRepository(memory.SeedProducts()), newTestLogger())

	p, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Smart Fitness Tracker", p.Name)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_GetByCategory(t *testing.T) {
	svc := NewCatalogService(memory.NewProductRepository(memory.SeedProducts()), newTestLogger())

	apparel, err := svc.GetByCategory(context.Background(), "APPAREL")
	require.NoError(t, err)
	require.Len(t, apparel, 1)
	assert.Equal(t, "Organic Cotton Hoodie", apparel[0].Name)

	unknown, err := svc.GetByCategory(context.Background(), "toys")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}
