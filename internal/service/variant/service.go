package variant

import (
	"context"
	"errors"
	"strings"

	"warung/internal/domain"
	variantrepo "warung/internal/repository/variant"
)

type Service struct {
	repo   variantrepo.Repository
	dishes dishLookup
}

type dishLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)
}

func New(repo variantrepo.Repository, dishes dishLookup) *Service {
	return &Service{repo: repo, dishes: dishes}
}

type Input struct {
	DishID          int64  `json:"dishId"`
	Type            string `json:"type"`
	Name            string `json:"name"`
	PriceDeltaCents int64  `json:"priceDeltaCents"`
	IsDefault       bool   `json:"isDefault"`
	IsActive        *bool  `json:"isActive"`
}

func (s *Service) ListByDish(ctx context.Context, dishID int64) ([]domain.DishVariant, error) {
	return s.repo.ListByDish(ctx, dishID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.DishVariant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.DishVariant, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := s.dishes.GetByID(ctx, in.DishID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("dish not found")
		}
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Create(ctx, domain.DishVariant{
		DishID:          in.DishID,
		Type:            strings.ToLower(strings.TrimSpace(in.Type)),
		Name:            strings.TrimSpace(in.Name),
		PriceDeltaCents: in.PriceDeltaCents,
		IsDefault:       in.IsDefault,
		IsActive:        active,
	})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.DishVariant, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Type = strings.ToLower(strings.TrimSpace(in.Type))
	existing.Name = strings.TrimSpace(in.Name)
	existing.PriceDeltaCents = in.PriceDeltaCents
	existing.IsDefault = in.IsDefault
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validate(in Input) error {
	if in.DishID <= 0 {
		return errors.New("dishId required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return errors.New("type required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	return nil
}
