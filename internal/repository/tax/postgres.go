package tax

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const taxColumns = `id, name, COALESCE(description, ''), type, rate_basis_points, amount_cents, is_active, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.Tax, error) {
	q := `
SELECT ` + taxColumns + `
FROM taxes
`
	if activeOnly {
		q += "WHERE is_active\n"
	}
	q += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Tax, error) {
	const q = `
SELECT ` + taxColumns + `
FROM taxes
WHERE id = $1
`
	t, err := scanTax(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) Create(ctx context.Context, t domain.Tax) (*domain.Tax, error) {
	const q = `
INSERT INTO taxes (name, description, type, rate_basis_points, amount_cents, is_active)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
RETURNING ` + taxColumns

	created, err := scanTax(r.pool.QueryRow(ctx, q, t.Name, t.Description, t.Type, t.RateBasisPoint, t.AmountCents, t.IsActive))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, t domain.Tax) (*domain.Tax, error) {
	const q = `
UPDATE taxes
SET name = $2,
    description = NULLIF($3, ''),
    type = $4,
    rate_basis_points = $5,
    amount_cents = $6,
    is_active = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + taxColumns

	updated, err := scanTax(r.pool.QueryRow(ctx, q, t.ID, t.Name, t.Description, t.Type, t.RateBasisPoint, t.AmountCents, t.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTax(row pgx.Row) (domain.Tax, error) {
	var t domain.Tax
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Type, &t.RateBasisPoint, &t.AmountCents, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
