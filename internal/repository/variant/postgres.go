package variant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const variantColumns = `id, dish_id, type, name, price_delta_cents, is_default, is_active, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByDish(ctx context.Context, dishID int64) ([]domain.DishVariant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM dish_variants
WHERE dish_id = $1
ORDER BY type ASC, price_delta_cents ASC
`
	rows, err := r.pool.Query(ctx, q, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DishVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.DishVariant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM dish_variants
WHERE id = $1
`
	v, err := scanVariant(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) Create(ctx context.Context, v domain.DishVariant) (*domain.DishVariant, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if v.IsDefault {
		if err := clearDefault(ctx, tx, v.DishID, v.Type); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO dish_variants (dish_id, type, name, price_delta_cents, is_default, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + variantColumns

	created, err := scanVariant(tx.QueryRow(ctx, q, v.DishID, v.Type, v.Name, v.PriceDeltaCents, v.IsDefault, v.IsActive))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, v domain.DishVariant) (*domain.DishVariant, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if v.IsDefault {
		if err := clearDefault(ctx, tx, v.DishID, v.Type); err != nil {
			return nil, err
		}
	}

	const q = `
UPDATE dish_variants
SET type = $2,
    name = $3,
    price_delta_cents = $4,
    is_default = $5,
    is_active = $6,
    updated_at = now()
WHERE id = $1
RETURNING ` + variantColumns

	updated, err := scanVariant(tx.QueryRow(ctx, q, v.ID, v.Type, v.Name, v.PriceDeltaCents, v.IsDefault, v.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM dish_variants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// clearDefault drops the default flag from other variants on the same axis so
// a (dish, type) pair has at most one default option.
func clearDefault(ctx context.Context, tx pgx.Tx, dishID int64, variantType string) error {
	_, err := tx.Exec(ctx, `
UPDATE dish_variants
SET is_default = false
WHERE dish_id = $1 AND type = $2 AND is_default
`, dishID, variantType)
	return err
}

func scanVariant(row pgx.Row) (domain.DishVariant, error) {
	var v domain.DishVariant
	err := row.Scan(&v.ID, &v.DishID, &v.Type, &v.Name, &v.PriceDeltaCents, &v.IsDefault, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}
