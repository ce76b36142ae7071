package core

import "errors"

// Errores sentinel que los adapters traducen desde su driver.
// Las capas superiores comparan con errors.Is, nunca con strings del driver.
var (
	// ErrNotFound: no existe registro con ese identificador / username.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate: violación de unicidad (username ya registrado).
	ErrDuplicate = errors.New("store: duplicate")

	// ErrInvalidID: el identificador no es válido para el tipo de ID del
	// driver (hex de ObjectID, uuid). Distinto de ErrNotFound: el cliente
	// mandó un id mal formado, no uno inexistente.
	ErrInvalidID = errors.New("store: invalid identifier")

	// ErrNotImplemented: driver declarado pero sin implementación.
	ErrNotImplemented = errors.New("store: not implemented")
)
