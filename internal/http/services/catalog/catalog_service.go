// Package catalog implementa las operaciones del catálogo de productos.
package catalog

import (
	"context"
	"errors"
	"strings"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// Service define las operaciones del catálogo.
type Service interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*core.Product, error)
	List(ctx context.Context, page, limit int64) (*dto.PagedProductsResponse, error)
	Search(ctx context.Context, query string, page, limit int64) (*dto.PagedProductsResponse, error)
	GetByID(ctx context.Context, id string) (*core.Product, error)
	Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*core.Product, error)
	Delete(ctx context.Context, id string) error
}

// Errores sentinel del service.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrEmptyQuery           = errors.New("query parameter is required")
	ErrMissingProductFields = errors.New("missing required product fields")
)

// Límite duro de tamaño de página: un limit arbitrario no debe poder pedir
// la colección entera.
const maxLimit int64 = 100

// Deps contiene las dependencias del catalog service.
type Deps struct {
	Products core.ProductRepository
}

type service struct {
	deps Deps
}

// NewService crea el catalog service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// normalizePage aplica el clamping documentado: page mínima 1, limit
// mínimo el default (10), limit máximo 100.
func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// totalPages calcula ceil(total/limit); 0 cuando no hay resultados.
func totalPages(total, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func (s *service) Create(ctx context.Context, in dto.CreateProductRequest) (*core.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrMissingProductFields
	}

	p, err := s.deps.Products.Create(ctx, core.CreateProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("product created",
		logger.Layer("service"),
		logger.Component("catalog"),
		logger.ProductID(p.ID),
	)
	return p, nil
}

func (s *service) List(ctx context.Context, page, limit int64) (*dto.PagedProductsResponse, error) {
	return s.page(ctx, "", page, limit)
}

func (s *service) Search(ctx context.Context, query string, page, limit int64) (*dto.PagedProductsResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.page(ctx, query, page, limit)
}

// page es la implementación común de list y search: misma paginación, el
// total siempre cuenta el conjunto filtrado.
func (s *service) page(ctx context.Context, search string, page, limit int64) (*dto.PagedProductsResponse, error) {
	page, limit = normalizePage(page, limit)
	skip := (page - 1) * limit

	items, total, err := s.deps.Products.List(ctx, core.ListQuery{
		Search: search,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("catalog"),
		logger.Page(page),
		logger.Limit(limit),
	)
	if search != "" {
		log = log.With(logger.Query(search))
	}
	log.Debug("catalog page served", logger.Any("total", total))

	return &dto.PagedProductsResponse{
		Products:   items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*core.Product, error) {
	p, err := s.deps.Products.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*core.Product, error) {
	p, err := s.deps.Products.Update(ctx, id, in.Patch())
	if err != nil {
		return nil, s.mapStoreErr(err)
	}

	logger.From(ctx).Info("product updated",
		logger.Layer("service"),
		logger.Component("catalog"),
		logger.ProductID(p.ID),
	)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.deps.Products.Delete(ctx, id); err != nil {
		return s.mapStoreErr(err)
	}

	logger.From(ctx).Info("product deleted",
		logger.Layer("service"),
		logger.Component("catalog"),
		logger.ProductID(id),
	)
	return nil
}

// mapStoreErr traduce sentinels del store a sentinels del service.
// ErrInvalidID y ErrNotFound son errores distintos a propósito: id mal
// formado es 400, id inexistente es 404.
func (s *service) mapStoreErr(err error) error {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, core.ErrInvalidID):
		return ErrInvalidProductID
	default:
		return err
	}
}
