// Package store resuelve el adapter de storage según el driver configurado.
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/store/core"
	mongostore "github.com/dropDatabas3/mercadito/internal/store/mongo"
	pgstore "github.com/dropDatabas3/mercadito/internal/store/pg"
)

// Open abre el repositorio para el driver configurado.
// Drivers soportados: "mongo" (default) y "pg".
func Open(ctx context.Context, cfg *config.Config) (core.Repository, error) {
	switch cfg.Storage.Driver {
	case "", "mongo":
		return mongostore.New(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database)
	case "pg", "postgres":
		return pgstore.New(ctx, cfg.Storage.Postgres.DSN)
	default:
		return nil, fmt.Errorf("store: driver %q: %w", cfg.Storage.Driver, core.ErrNotImplemented)
	}
}
