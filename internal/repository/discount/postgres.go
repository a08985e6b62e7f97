package discount

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const discountColumns = `id, title, COALESCE(description, ''), type, percent, amount_cents, is_active, starts_at, expires_at, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
ORDER BY created_at DESC
`
	return r.fetchMany(ctx, q)
}

func (r *postgresRepo) ListActive(ctx context.Context, now time.Time, limit int) ([]domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
WHERE is_active AND starts_at <= $1 AND expires_at >= $1
ORDER BY created_at DESC
LIMIT $2
`
	return r.fetchMany(ctx, q, now, limit)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
WHERE id = $1
`
	d, err := scanDiscount(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) Create(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	const q = `
INSERT INTO discounts (title, description, type, percent, amount_cents, is_active, starts_at, expires_at)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
RETURNING ` + discountColumns

	created, err := scanDiscount(r.pool.QueryRow(ctx, q, d.Title, d.Description, d.Type, d.Percent, d.AmountCents, d.IsActive, d.StartsAt, d.ExpiresAt))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	const q = `
UPDATE discounts
SET title = $2,
    description = NULLIF($3, ''),
    type = $4,
    percent = $5,
    amount_cents = $6,
    is_active = $7,
    starts_at = $8,
    expires_at = $9,
    updated_at = now()
WHERE id = $1
RETURNING ` + discountColumns

	updated, err := scanDiscount(r.pool.QueryRow(ctx, q, d.ID, d.Title, d.Description, d.Type, d.Percent, d.AmountCents, d.IsActive, d.StartsAt, d.ExpiresAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchMany(ctx context.Context, q string, args ...any) ([]domain.Discount, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func scanDiscount(row pgx.Row) (domain.Discount, error) {
	var d domain.Discount
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Type, &d.Percent, &d.AmountCents, &d.IsActive, &d.StartsAt, &d.ExpiresAt, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
