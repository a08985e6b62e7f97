package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/domain"
)

const orderColumns = `id, order_number, user_id, type, status, payment_status, subtotal_cents, tax_cents, total_cents, COALESCE(note, ''), created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (id, order_number, user_id, type, status, payment_status, subtotal_cents, tax_cents, total_cents, note)
VALUES ($1, $2, $3, $4, 'pending', 'unpaid', $5, $6, $7, NULLIF($8, ''))
RETURNING ` + orderColumns

	ord, err := scanOrder(tx.QueryRow(ctx, q, in.ID, in.OrderNumber, in.UserID, in.Type, in.SubtotalCents, in.TaxCents, in.TotalCents, in.Note))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	for _, item := range in.Items {
		var lineID int64
		err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, dish_id, dish_name, quantity, unit_price_cents, total_cents, variants)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`, ord.ID, item.DishID, item.DishName, item.Quantity, item.UnitPriceCents, item.TotalCents, item.Variants).Scan(&lineID)
		if err != nil {
			return nil, err
		}
		item.ID = lineID
		item.OrderID = ord.ID
		ord.Items = append(ord.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &ord); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.fetchMany(ctx, q, userID)
}

func (r *postgresRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
`
	args := []any{}
	if status != "" {
		args = append(args, status)
		q += "WHERE status = $1\n"
	}
	q += "ORDER BY created_at DESC\n"
	args = append(args, limit, offset)
	if status != "" {
		q += "LIMIT $2 OFFSET $3"
	} else {
		q += "LIMIT $1 OFFSET $2"
	}
	return r.fetchMany(ctx, q, args...)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2,
    updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns

	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &ord); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) fetchMany(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, ord *domain.Order) error {
	const q = `
SELECT id, order_id, dish_id, dish_name, quantity, unit_price_cents, total_cents, variants
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, ord.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &item.DishName, &item.Quantity, &item.UnitPriceCents, &item.TotalCents, &item.Variants); err != nil {
			return err
		}
		ord.Items = append(ord.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var ord domain.Order
	err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &ord.Type, &ord.Status, &ord.PaymentStatus, &ord.SubtotalCents, &ord.TaxCents, &ord.TotalCents, &ord.Note, &ord.CreatedAt, &ord.UpdatedAt)
	return ord, err
}
