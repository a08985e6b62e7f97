package importer

import (
	"context"
	"strings"
	"testing"

	"warung/internal/domain"
)

type stubDishWriter struct {
	saved []domain.Dish
	err   error
}

func (s *stubDishWriter) Upsert(ctx context.Context, d domain.Dish) (*domain.Dish, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, d)
	return &d, nil
}

type stubCategoryLookup struct {
	categories map[string]int64
}

func (s *stubCategoryLookup) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	id, ok := s.categories[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Category{ID: id, Slug: slug}, nil
}

const sampleCSV = `category,name,slug,description,price_cents,available,featured,preparation_time
main-dishes,Nasi Goreng Spesial,nasi-goreng-spesial,Fried rice with chicken,3500,true,true,15
drinks,Es Teh Manis,,Sweet iced tea,800,true,false,3
,Pisang Goreng,pisang-goreng,,1500,false,false,
`

func TestRunImportsRows(t *testing.T) {
	writer := &stubDishWriter{}
	lookup := &stubCategoryLookup{categories: map[string]int64{"main-dishes": 1, "drinks": 2}}

	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer, lookup)
	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 {
		t.Fatalf("imported = %d, want 3", n)
	}

	first := writer.saved[0]
	if first.Slug != "nasi-goreng-spesial" || first.PriceCents != 3500 || !first.IsFeatured {
		t.Fatalf("unexpected first dish: %+v", first)
	}
	if first.CategoryID == nil || *first.CategoryID != 1 {
		t.Fatalf("first dish category = %v, want 1", first.CategoryID)
	}

	// Slug falls back to a slugified name when the column is empty.
	if writer.saved[1].Slug != "es-teh-manis" {
		t.Fatalf("second dish slug = %q", writer.saved[1].Slug)
	}

	third := writer.saved[2]
	if third.CategoryID != nil {
		t.Fatalf("third dish category = %v, want nil", third.CategoryID)
	}
	if third.Available {
		t.Fatal("third dish should be unavailable")
	}
}

func TestRunRejectsBadPrice(t *testing.T) {
	csv := "name,price_cents\nMie Ayam,free\n"
	imp := NewCSVImporter(strings.NewReader(csv), &stubDishWriter{}, &stubCategoryLookup{})

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestRunRejectsUnknownCategory(t *testing.T) {
	csv := "category,name,price_cents\ndesserts,Klepon,1200\n"
	imp := NewCSVImporter(strings.NewReader(csv), &stubDishWriter{}, &stubCategoryLookup{})

	_, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Fatalf("err = %v, want unknown category", err)
	}
}

func TestRunSkipsBlankRows(t *testing.T) {
	csv := "name,price_cents\nSate Ayam,4000\n,\n"
	writer := &stubDishWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), writer, &stubCategoryLookup{})

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 || len(writer.saved) != 1 {
		t.Fatalf("imported = %d saved = %d, want 1", n, len(writer.saved))
	}
}
