package dish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"warung/internal/domain"
	dishrepo "warung/internal/repository/dish"
)

type Service struct {
	repo dishrepo.Repository
}

func New(repo dishrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	CategoryID      *int64 `json:"categoryId"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	PriceCents      int64  `json:"priceCents"`
	Available       *bool  `json:"available"`
	IsFeatured      bool   `json:"isFeatured"`
	PreparationTime int    `json:"preparationTime"`
	SortOrder       int    `json:"sortOrder"`
}

func (s *Service) List(ctx context.Context, f dishrepo.ListFilter) ([]domain.Dish, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Count(ctx context.Context, f dishrepo.ListFilter) (int, error) {
	return s.repo.Count(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the dish even when unavailable: detail pages still render
// sold-out dishes, and the cart reconciler drops unavailable ones itself.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*domain.Dish, error) {
	return s.repo.GetBySlug(ctx, slugStr)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Dish, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	uniqueSlug, err := s.uniqueSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return s.repo.Create(ctx, domain.Dish{
		CategoryID:      in.CategoryID,
		Name:            strings.TrimSpace(in.Name),
		Slug:            uniqueSlug,
		Description:     strings.TrimSpace(in.Description),
		Image:           strings.TrimSpace(in.Image),
		PriceCents:      in.PriceCents,
		Available:       available,
		IsFeatured:      in.IsFeatured,
		PreparationTime: in.PreparationTime,
		SortOrder:       in.SortOrder,
	})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Dish, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name != existing.Name {
		newSlug, err := s.uniqueSlug(ctx, name)
		if err != nil {
			return nil, err
		}
		existing.Slug = newSlug
	}
	existing.CategoryID = in.CategoryID
	existing.Name = name
	existing.Description = strings.TrimSpace(in.Description)
	existing.Image = strings.TrimSpace(in.Image)
	existing.PriceCents = in.PriceCents
	if in.Available != nil {
		existing.Available = *in.Available
	}
	existing.IsFeatured = in.IsFeatured
	existing.PreparationTime = in.PreparationTime
	existing.SortOrder = in.SortOrder
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// uniqueSlug slugifies the name and appends -2, -3, ... until free.
func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if in.PriceCents <= 0 {
		return errors.New("price must be positive")
	}
	if in.PreparationTime < 0 {
		return errors.New("preparation time must not be negative")
	}
	return nil
}
