package category

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"
	"warung/internal/domain"
	categoryrepo "warung/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Create(ctx, domain.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		IsActive:    active,
		SortOrder:   in.SortOrder,
	})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Category, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	existing.Name = name
	existing.Slug = slug.Make(name)
	existing.Description = strings.TrimSpace(in.Description)
	existing.Image = strings.TrimSpace(in.Image)
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	existing.SortOrder = in.SortOrder
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
