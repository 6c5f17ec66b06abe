// Package http exposes the storefront REST API.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mikii-john/e-commerce-backend/internal/service"
	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
	"github.com/mikii-john/e-commerce-backend/pkg/httputil"
)

// ProductHandler handles HTTP requests for catalogue endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.OK(products))
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.writeProductNotFound(w, rawID)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeProductNotFound(w, rawID)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK(product))
}

// ListProductsByCategory handles GET /api/products/category/{category}
func (h *ProductHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.service.GetByCategory(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if len(products) == 0 {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Success: false,
			Message: fmt.Sprintf("No products found in category: %s", category),
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK(products))
}

func (h *ProductHandler) writeProductNotFound(w http.ResponseWriter, id string) {
	httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
		Success: false,
		Message: fmt.Sprintf("Product with ID %s not found", id),
	})
}
