package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// uniqueViolation es el SQLSTATE de violación de unicidad.
const uniqueViolation = "23505"

type userRepo struct {
	pool *pgxpool.Pool
}

func (r *userRepo) Create(ctx context.Context, username, passwordHash string) (*core.User, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		id, username, passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, core.ErrDuplicate
		}
		return nil, fmt.Errorf("pg: insert user: %w", err)
	}

	return &core.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*core.User, error) {
	var u core.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("pg: find user: %w", err)
	}
	return &u, nil
}
