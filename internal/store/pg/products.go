package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

type productRepo struct {
	pool *pgxpool.Pool
}

// parseID valida que el id sea un uuid bien formado (ErrInvalidID si no).
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", core.ErrInvalidID
	}
	return u.String(), nil
}

// escapeLike escapa los metacaracteres de LIKE para búsqueda por substring literal.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func (r *productRepo) Create(ctx context.Context, in core.CreateProductInput) (*core.Product, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, category) VALUES ($1, $2, $3, $4, $5)`,
		id, in.Name, in.Description, in.Price, in.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("pg: insert product: %w", err)
	}

	return &core.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}, nil
}

func (r *productRepo) List(ctx context.Context, q core.ListQuery) ([]core.Product, int64, error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = ` WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1`
		args = append(args, escapeLike(q.Search))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pg: count products: %w", err)
	}

	// Orden explícito por id para páginas estables, igual que el adapter mongo.
	query := fmt.Sprintf(
		`SELECT id, name, description, price, category FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pg: select products: %w", err)
	}
	defer rows.Close()

	items := []core.Product{}
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category); err != nil {
			return nil, 0, fmt.Errorf("pg: scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pg: iterate products: %w", err)
	}
	return items, total, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*core.Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var p core.Product
	err = r.pool.QueryRow(ctx,
		`SELECT id, name, description, price, category FROM products WHERE id = $1`,
		pid,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("pg: find product: %w", err)
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, id string, patch core.ProductPatch) (*core.Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	args = append(args, pid)

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING id, name, description, price, category`,
		strings.Join(sets, ", "), len(args),
	)

	var p core.Product
	err = r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("pg: update product: %w", err)
	}
	return &p, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, pid)
	if err != nil {
		return fmt.Errorf("pg: delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
