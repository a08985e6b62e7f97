package discount

import (
	"context"
	"time"

	"warung/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Discount, error)
	ListActive(ctx context.Context, now time.Time, limit int) ([]domain.Discount, error)
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	Create(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Update(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Delete(ctx context.Context, id int64) error
}
