package dish

import (
	"context"

	"warung/internal/domain"
)

// ListFilter narrows storefront and dashboard listings.
type ListFilter struct {
	AvailableOnly bool
	FeaturedOnly  bool
	CategoryID    *int64
	Search        string
	Limit         int
	Offset        int
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Dish, error)
	Count(ctx context.Context, f ListFilter) (int, error)
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Dish, error)
	Create(ctx context.Context, d domain.Dish) (*domain.Dish, error)
	Update(ctx context.Context, d domain.Dish) (*domain.Dish, error)
	Upsert(ctx context.Context, d domain.Dish) (*domain.Dish, error)
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
