// Package catalog contiene DTOs para los endpoints del catálogo.
package catalog

import "github.com/dropDatabas3/mercadito/internal/store/core"

// CreateProductRequest es el body de POST /api/products.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// UpdateProductRequest es el body de PUT /api/products/{id}.
// Punteros: solo las claves presentes en el JSON se mergean al registro.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// Patch convierte el request al patch del store.
func (u UpdateProductRequest) Patch() core.ProductPatch {
	return core.ProductPatch{
		Name:        u.Name,
		Description: u.Description,
		Price:       u.Price,
		Category:    u.Category,
	}
}

// PagedProductsResponse es la respuesta de list y search.
type PagedProductsResponse struct {
	Products   []core.Product `json:"products"`
	Total      int64          `json:"total"`
	Page       int64          `json:"page"`
	Limit      int64          `json:"limit"`
	TotalPages int64          `json:"totalPages"`
}

// MessageResponse es la respuesta de delete.
type MessageResponse struct {
	Message string `json:"message"`
}
