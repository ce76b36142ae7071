// Package core define los tipos y contratos del storage, independientes del driver.
package core

// User es una cuenta registrada. El ID lo asigna el store al crear.
// Los usuarios no se actualizan ni se borran en este sistema.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Product es un ítem del catálogo. El ID lo asigna el store al crear.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// CreateProductInput son los campos requeridos para crear un producto.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

// ProductPatch modela un update parcial: solo los campos no-nil se aplican.
// El merge es atómico a nivel de documento (una sola operación del store).
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// Empty indica si el patch no trae ningún campo.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil
}

// ListQuery describe una página del catálogo.
// Search vacío lista todo; no vacío filtra por substring case-insensitive
// sobre name, description y category.
type ListQuery struct {
	Search string
	Skip   int64
	Limit  int64
}
