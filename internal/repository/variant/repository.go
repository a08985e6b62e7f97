package variant

import (
	"context"

	"warung/internal/domain"
)

type Repository interface {
	ListByDish(ctx context.Context, dishID int64) ([]domain.DishVariant, error)
	GetByID(ctx context.Context, id int64) (*domain.DishVariant, error)
	Create(ctx context.Context, v domain.DishVariant) (*domain.DishVariant, error)
	Update(ctx context.Context, v domain.DishVariant) (*domain.DishVariant, error)
	Delete(ctx context.Context, id int64) error
}
