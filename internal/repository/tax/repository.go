package tax

import (
	"context"

	"warung/internal/domain"
)

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Tax, error)
	GetByID(ctx context.Context, id int64) (*domain.Tax, error)
	Create(ctx context.Context, t domain.Tax) (*domain.Tax, error)
	Update(ctx context.Context, t domain.Tax) (*domain.Tax, error)
	Delete(ctx context.Context, id int64) error
}
