package discount

import (
	"context"
	"errors"
	"strings"
	"time"

	"warung/internal/domain"
	discountrepo "warung/internal/repository/discount"
)

// Storefront shows at most the three newest live discounts.
const activeLimit = 3

type Service struct {
	repo discountrepo.Repository
	now  func() time.Time
}

func New(repo discountrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type Input struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Percent     int       `json:"percent"`
	AmountCents int64     `json:"amountCents"`
	IsActive    *bool     `json:"isActive"`
	StartsAt    time.Time `json:"startsAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Service) List(ctx context.Context) ([]domain.Discount, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Discount, error) {
	return s.repo.ListActive(ctx, s.now(), activeLimit)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Discount, error) {
	d, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Discount, error) {
	d, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.ID = existing.ID
	d.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func fromInput(in Input) (domain.Discount, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Discount{}, errors.New("title required")
	}
	if in.StartsAt.IsZero() || in.ExpiresAt.IsZero() {
		return domain.Discount{}, errors.New("startsAt and expiresAt required")
	}
	if !in.ExpiresAt.After(in.StartsAt) {
		return domain.Discount{}, errors.New("expiresAt must be after startsAt")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	d := domain.Discount{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		IsActive:    active,
		StartsAt:    in.StartsAt,
		ExpiresAt:   in.ExpiresAt,
	}
	switch in.Type {
	case domain.DiscountTypePercentage:
		if in.Percent < 1 || in.Percent > 100 {
			return domain.Discount{}, errors.New("percent must be between 1 and 100")
		}
		d.Percent = in.Percent
	case domain.DiscountTypeFixedAmount:
		if in.AmountCents <= 0 {
			return domain.Discount{}, errors.New("amount must be positive")
		}
		d.AmountCents = in.AmountCents
	default:
		return domain.Discount{}, errors.New("type must be percentage or fixed_amount")
	}
	return d, nil
}
