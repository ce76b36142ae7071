// Package pg implementa el adapter Postgres sobre pgx, con los mismos
// contratos que el adapter mongo. Los identificadores son uuid generados
// del lado del cliente.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// Store implementa core.Repository sobre un pool pgx.
type Store struct {
	pool     *pgxpool.Pool
	users    *userRepo
	products *productRepo
}

// New abre el pool, verifica la conexión y asegura el esquema mínimo.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg: empty dsn")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}

	s := &Store{
		pool:     pool,
		users:    &userRepo{pool: pool},
		products: &productRepo{pool: pool},
	}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// ensureSchema crea las tablas si no existen. No hay migraciones versionadas
// en este sistema; el esquema es estable.
func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id            uuid PRIMARY KEY,
    username      text NOT NULL UNIQUE,
    password_hash text NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
    id          uuid PRIMARY KEY,
    name        text NOT NULL,
    description text NOT NULL DEFAULT '',
    price       double precision NOT NULL DEFAULT 0,
    category    text NOT NULL DEFAULT ''
);`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("pg: ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Users() core.UserRepository       { return s.users }
func (s *Store) Products() core.ProductRepository { return s.products }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}
