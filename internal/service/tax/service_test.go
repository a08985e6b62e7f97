package tax

import (
	"context"
	"testing"

	"warung/internal/domain"
	taxrepo "warung/internal/repository/tax"
)

type stubRepo struct {
	taxrepo.Repository

	created *domain.Tax
}

func (s *stubRepo) Create(_ context.Context, t domain.Tax) (*domain.Tax, error) {
	s.created = &t
	return &t, nil
}

func TestCreatePercentage(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "PB1", Type: "percentage", RateBasisPoint: 1000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.RateBasisPoint != 1000 || created.AmountCents != 0 {
		t.Fatalf("unexpected tax %+v", created)
	}
	if !created.IsActive {
		t.Fatal("tax should default to active")
	}
	if created.Apply(10000) != 1000 {
		t.Fatalf("apply = %d, want 1000", created.Apply(10000))
	}
}

func TestCreateFixedAmount(t *testing.T) {
	svc := New(&stubRepo{})

	created, err := svc.Create(context.Background(), Input{Name: "Service", Type: "fixed_amount", AmountCents: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Apply(12345) != 500 {
		t.Fatalf("apply = %d, want 500", created.Apply(12345))
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{})

	cases := []struct {
		name string
		in   Input
	}{
		{"missing name", Input{Type: "percentage", RateBasisPoint: 100}},
		{"unknown type", Input{Name: "X", Type: "flat", RateBasisPoint: 100}},
		{"zero rate", Input{Name: "X", Type: "percentage"}},
		{"rate above 100 percent", Input{Name: "X", Type: "percentage", RateBasisPoint: 10001}},
		{"zero amount", Input{Name: "X", Type: "fixed_amount"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
