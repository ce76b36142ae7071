package core

import "context"

// UserRepository es el adapter de la colección/tabla de usuarios.
// Sin lógica de negocio: el hashing y la emisión de tokens viven en el service.
type UserRepository interface {
	// Create persiste un usuario nuevo y devuelve el registro con ID asignado.
	// Devuelve ErrDuplicate si el username ya existe.
	Create(ctx context.Context, username, passwordHash string) (*User, error)

	// GetByUsername devuelve ErrNotFound si no existe.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// ProductRepository es el adapter de la colección/tabla de productos.
type ProductRepository interface {
	// Create persiste un producto y devuelve el registro con ID asignado.
	Create(ctx context.Context, in CreateProductInput) (*Product, error)

	// List devuelve la página pedida y el total del conjunto filtrado.
	// El orden es por ID ascendente para que las páginas sean estables.
	List(ctx context.Context, q ListQuery) (items []Product, total int64, err error)

	// GetByID devuelve ErrNotFound / ErrInvalidID según corresponda.
	GetByID(ctx context.Context, id string) (*Product, error)

	// Update aplica el patch en una sola operación atómica y devuelve el
	// registro post-update. ErrNotFound / ErrInvalidID según corresponda.
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)

	// Delete devuelve ErrNotFound / ErrInvalidID según corresponda.
	Delete(ctx context.Context, id string) error
}

// Repository agrupa los repositorios y el ciclo de vida de la conexión.
type Repository interface {
	Users() UserRepository
	Products() ProductRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
