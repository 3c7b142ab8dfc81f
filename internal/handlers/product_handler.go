package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/online-store/internal/repository"
	"github.com/Lixing-Zhang/online-store/internal/service"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles product and category HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
// Optional query: category (exact), minPrice, maxPrice (inclusive), inStock
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("invalid product filter", "query", r.URL.RawQuery, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	list, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	WriteJSON(w, http.StatusOK, list, h.logger)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, err, productID)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /api/products
// - 201: created product
// - 400: missing or invalid field
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		h.logger.Warn("failed to decode product payload", "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	h.logger.Info("product created", "productId", product.ID, "category", product.Category)
	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PATCH /api/products/{productId}
// - 200: updated product
// - 400: empty body or invalid field
// - 404: product not found
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	fields, err := decodeFields(w, r)
	if err != nil {
		h.logger.Warn("failed to decode product payload", "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, fields)
	if err != nil {
		h.writeServiceError(w, err, productID)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /api/products/{productId}
// - 204: deleted, empty body
// - 404: product not found
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.writeServiceError(w, err, productID)
		return
	}

	h.logger.Info("product deleted", "productId", productID)
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// writeServiceError maps service errors onto HTTP statuses
func (h *ProductHandler) writeServiceError(w http.ResponseWriter, err error, productID string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		h.logger.Info("product not found", "productId", productID)
		WriteError(w, http.StatusNotFound, msgProductNotFound, h.logger)
	case service.IsValidationError(err):
		h.logger.Warn("invalid product payload", "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
	default:
		h.logger.Error("product operation failed", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
	}
}
