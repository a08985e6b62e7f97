package dish

import (
	"context"
	"testing"

	"warung/internal/domain"
	dishrepo "warung/internal/repository/dish"
)

type stubRepo struct {
	dishrepo.Repository

	slugs   map[string]bool
	dishes  map[int64]*domain.Dish
	created *domain.Dish
	updated *domain.Dish
}

func newStubRepo() *stubRepo {
	return &stubRepo{slugs: map[string]bool{}, dishes: map[int64]*domain.Dish{}}
}

func (s *stubRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return s.slugs[slug], nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Dish, error) {
	d, ok := s.dishes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *stubRepo) Create(_ context.Context, d domain.Dish) (*domain.Dish, error) {
	d.ID = int64(len(s.dishes) + 1)
	s.dishes[d.ID] = &d
	s.slugs[d.Slug] = true
	s.created = &d
	return &d, nil
}

func (s *stubRepo) Update(_ context.Context, d domain.Dish) (*domain.Dish, error) {
	s.dishes[d.ID] = &d
	s.slugs[d.Slug] = true
	s.updated = &d
	return &d, nil
}

func TestCreateSlugifiesName(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "Nasi Goreng Spesial", PriceCents: 3500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "nasi-goreng-spesial" {
		t.Fatalf("slug = %q", created.Slug)
	}
	if !created.Available {
		t.Fatal("dish should default to available")
	}
}

func TestCreateDeduplicatesSlug(t *testing.T) {
	repo := newStubRepo()
	repo.slugs["mie-ayam"] = true
	repo.slugs["mie-ayam-2"] = true
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "Mie Ayam", PriceCents: 3000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "mie-ayam-3" {
		t.Fatalf("slug = %q, want mie-ayam-3", created.Slug)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(newStubRepo())

	cases := []struct {
		name string
		in   Input
	}{
		{"missing name", Input{PriceCents: 1000}},
		{"zero price", Input{Name: "Sate", PriceCents: 0}},
		{"negative price", Input{Name: "Sate", PriceCents: -100}},
		{"negative prep time", Input{Name: "Sate", PriceCents: 1000, PreparationTime: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestUpdateKeepsSlugWhenNameUnchanged(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "Es Jeruk", PriceCents: 1200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Input{Name: "Es Jeruk", PriceCents: 1500})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != created.Slug {
		t.Fatalf("slug changed from %q to %q", created.Slug, updated.Slug)
	}
	if updated.PriceCents != 1500 {
		t.Fatalf("price = %d, want 1500", updated.PriceCents)
	}
}

func TestUpdateRegeneratesSlugOnRename(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "Es Jeruk", PriceCents: 1200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Input{Name: "Es Jeruk Nipis", PriceCents: 1200})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "es-jeruk-nipis" {
		t.Fatalf("slug = %q, want es-jeruk-nipis", updated.Slug)
	}
}
