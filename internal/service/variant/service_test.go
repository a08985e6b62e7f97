package variant

import (
	"context"
	"testing"

	"warung/internal/domain"
	variantrepo "warung/internal/repository/variant"
)

type stubRepo struct {
	variantrepo.Repository

	created *domain.DishVariant
}

func (s *stubRepo) Create(_ context.Context, v domain.DishVariant) (*domain.DishVariant, error) {
	s.created = &v
	return &v, nil
}

type stubDishLookup struct {
	known map[int64]bool
}

func (s *stubDishLookup) GetByID(_ context.Context, id int64) (*domain.Dish, error) {
	if !s.known[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Dish{ID: id}, nil
}

func TestCreateNormalizesType(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubDishLookup{known: map[int64]bool{1: true}})

	created, err := svc.Create(context.Background(), Input{DishID: 1, Type: "  Spice ", Name: " Hot "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Type != "spice" || created.Name != "Hot" {
		t.Fatalf("unexpected variant %+v", created)
	}
	if !created.IsActive {
		t.Fatal("variant should default to active")
	}
}

func TestCreateRejectsUnknownDish(t *testing.T) {
	svc := New(&stubRepo{}, &stubDishLookup{})

	if _, err := svc.Create(context.Background(), Input{DishID: 7, Type: "size", Name: "Large"}); err == nil {
		t.Fatal("expected error for unknown dish")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubDishLookup{known: map[int64]bool{1: true}})

	cases := []struct {
		name string
		in   Input
	}{
		{"missing dish", Input{Type: "size", Name: "Large"}},
		{"missing type", Input{DishID: 1, Name: "Large"}},
		{"missing name", Input{DishID: 1, Type: "size"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
