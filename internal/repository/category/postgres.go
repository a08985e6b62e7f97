package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const categoryColumns = `id, name, slug, COALESCE(description, ''), COALESCE(image, ''), is_active, sort_order, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	q := `
SELECT ` + categoryColumns + `
FROM categories
`
	if activeOnly {
		q += "WHERE is_active\n"
	}
	q += "ORDER BY sort_order ASC, name ASC"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const q = `
SELECT ` + categoryColumns + `
FROM categories
WHERE id = $1
`
	return r.fetchOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const q = `
SELECT ` + categoryColumns + `
FROM categories
WHERE slug = $1
`
	return r.fetchOne(ctx, q, slug)
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug, description, image, is_active, sort_order)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, q, c.Name, c.Slug, c.Description, c.Image, c.IsActive, c.SortOrder)
	created, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $2,
    slug = $3,
    description = NULLIF($4, ''),
    image = NULLIF($5, ''),
    is_active = $6,
    sort_order = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Slug, c.Description, c.Image, c.IsActive, c.SortOrder)
	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dishes WHERE category_id = $1)`, id).Scan(&inUse); err != nil {
		return err
	}
	if inUse {
		return domain.ErrInUse
	}

	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg any) (*domain.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
