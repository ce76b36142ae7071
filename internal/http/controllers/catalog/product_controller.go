// Package catalog expone los endpoints CRUD del catálogo de productos.
package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	httperrors "github.com/dropDatabas3/mercadito/internal/http/errors"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// Controller maneja las rutas /api/products.
type Controller struct {
	service svc.Service
}

// NewController crea el catalog controller.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// List maneja GET /api/products.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.List"))

	page, limit := helpers.PageParams(r)
	result, err := c.service.List(ctx, page, limit)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

// Search maneja GET /api/products/search?query=...
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.Search"))

	page, limit := helpers.PageParams(r)
	query := r.URL.Query().Get("query")

	result, err := c.service.Search(ctx, query, page, limit)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

// Get maneja GET /api/products/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.Get"))

	product, err := c.service.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, product)
}

// Create maneja POST /api/products.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.Create"))

	var req dto.CreateProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	product, err := c.service.Create(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, product)
}

// Update maneja PUT /api/products/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.Update"))

	var req dto.UpdateProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	product, err := c.service.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, product)
}

// Delete maneja DELETE /api/products/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Catalog.Delete"))

	if err := c.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}

// handleError mapea errores del service a respuestas HTTP.
func (c *Controller) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingProductFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("product name is required"))
	case errors.Is(err, svc.ErrEmptyQuery):
		httperrors.WriteError(w, httperrors.ErrMissingQuery)
	case errors.Is(err, svc.ErrInvalidProductID):
		httperrors.WriteError(w, httperrors.ErrInvalidIdentifier)
	case errors.Is(err, svc.ErrProductNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("product not found"))
	default:
		log.Error("unexpected catalog error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
