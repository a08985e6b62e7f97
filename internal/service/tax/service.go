package tax

import (
	"context"
	"errors"
	"strings"

	"warung/internal/domain"
	taxrepo "warung/internal/repository/tax"
)

type Service struct {
	repo taxrepo.Repository
}

func New(repo taxrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	RateBasisPoint int64  `json:"rateBasisPoints"`
	AmountCents    int64  `json:"amountCents"`
	IsActive       *bool  `json:"isActive"`
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Tax, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Tax, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Tax, error) {
	t, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Tax, error) {
	t, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func fromInput(in Input) (domain.Tax, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Tax{}, errors.New("name required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	t := domain.Tax{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		IsActive:    active,
	}
	switch in.Type {
	case domain.TaxTypePercentage:
		// Rate is in basis points: 10000 = 100%.
		if in.RateBasisPoint <= 0 || in.RateBasisPoint > 10000 {
			return domain.Tax{}, errors.New("rate must be between 1 and 10000 basis points")
		}
		t.RateBasisPoint = in.RateBasisPoint
	case domain.TaxTypeFixedAmount:
		if in.AmountCents <= 0 {
			return domain.Tax{}, errors.New("amount must be positive")
		}
		t.AmountCents = in.AmountCents
	default:
		return domain.Tax{}, errors.New("type must be percentage or fixed_amount")
	}
	return t, nil
}
