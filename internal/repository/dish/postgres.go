package dish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const dishColumns = `id, category_id, name, slug, COALESCE(description, ''), COALESCE(image, ''), price_cents, available, is_featured, COALESCE(preparation_time, 0), sort_order, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Dish, error) {
	where, args := buildWhere(f)
	q := `
SELECT ` + dishColumns + `
FROM dishes
` + where + `
ORDER BY sort_order ASC, created_at DESC
`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf("LIMIT $%d\n", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf("OFFSET $%d\n", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("dish repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("dish repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Count(ctx context.Context, f ListFilter) (int, error) {
	where, args := buildWhere(f)
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dishes `+where, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	const q = `
SELECT ` + dishColumns + `
FROM dishes
WHERE id = $1
`
	return r.fetchOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Dish, error) {
	const q = `
SELECT ` + dishColumns + `
FROM dishes
WHERE slug = $1
`
	return r.fetchOne(ctx, q, slug)
}

func (r *postgresRepo) Create(ctx context.Context, d domain.Dish) (*domain.Dish, error) {
	const q = `
INSERT INTO dishes (category_id, name, slug, description, image, price_cents, available, is_featured, preparation_time, sort_order)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10)
RETURNING ` + dishColumns

	row := r.pool.QueryRow(ctx, q, d.CategoryID, d.Name, d.Slug, d.Description, d.Image, d.PriceCents, d.Available, d.IsFeatured, d.PreparationTime, d.SortOrder)
	created, err := scanDish(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("dish repo: create slug=%s error=%v", d.Slug, err)
		return nil, err
	}
	r.logger.Printf("dish repo: created id=%d slug=%s", created.ID, created.Slug)
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, d domain.Dish) (*domain.Dish, error) {
	const q = `
UPDATE dishes
SET category_id = $2,
    name = $3,
    slug = $4,
    description = NULLIF($5, ''),
    image = NULLIF($6, ''),
    price_cents = $7,
    available = $8,
    is_featured = $9,
    preparation_time = $10,
    sort_order = $11,
    updated_at = now()
WHERE id = $1
RETURNING ` + dishColumns

	row := r.pool.QueryRow(ctx, q, d.ID, d.CategoryID, d.Name, d.Slug, d.Description, d.Image, d.PriceCents, d.Available, d.IsFeatured, d.PreparationTime, d.SortOrder)
	updated, err := scanDish(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("dish repo: update id=%d error=%v", d.ID, err)
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, d domain.Dish) (*domain.Dish, error) {
	const q = `
INSERT INTO dishes (category_id, name, slug, description, image, price_cents, available, is_featured, preparation_time, sort_order)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10)
ON CONFLICT (slug) DO UPDATE
SET category_id = EXCLUDED.category_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    price_cents = EXCLUDED.price_cents,
    available = EXCLUDED.available,
    is_featured = EXCLUDED.is_featured,
    preparation_time = EXCLUDED.preparation_time,
    sort_order = EXCLUDED.sort_order,
    updated_at = now()
RETURNING ` + dishColumns

	row := r.pool.QueryRow(ctx, q, d.CategoryID, d.Name, d.Slug, d.Description, d.Image, d.PriceCents, d.Available, d.IsFeatured, d.PreparationTime, d.SortOrder)
	saved, err := scanDish(row)
	if err != nil {
		r.logger.Printf("dish repo: upsert slug=%s error=%v", d.Slug, err)
		return nil, err
	}
	return &saved, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	var inOrders bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE dish_id = $1)`, id).Scan(&inOrders); err != nil {
		return err
	}
	if inOrders {
		return domain.ErrInUse
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM dish_variants WHERE dish_id = $1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dishes WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg any) (*domain.Dish, error) {
	d, err := scanDish(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func buildWhere(f ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.AvailableOnly {
		conds = append(conds, "available")
	}
	if f.FeaturedOnly {
		conds = append(conds, "is_featured")
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND ") + "\n", args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanDish(row pgx.Row) (domain.Dish, error) {
	var d domain.Dish
	err := row.Scan(&d.ID, &d.CategoryID, &d.Name, &d.Slug, &d.Description, &d.Image, &d.PriceCents, &d.Available, &d.IsFeatured, &d.PreparationTime, &d.SortOrder, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
