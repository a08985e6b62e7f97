// Package importer loads menu data from CSV exports into the catalog.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"warung/internal/domain"
)

type DishWriter interface {
	Upsert(ctx context.Context, d domain.Dish) (*domain.Dish, error)
}

type categoryLookup interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

// CSVImporter reads menu CSV rows and inserts/updates dishes. Expected
// columns: category, name, slug, description, image, price_cents, available,
// featured, preparation_time. Only name and price_cents are required.
type CSVImporter struct {
	reader     *csv.Reader
	dishes     DishWriter
	categories categoryLookup
}

func NewCSVImporter(r io.Reader, dishes DishWriter, categories categoryLookup) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		dishes:     dishes,
		categories: categories,
	}
}

// Run parses CSV rows and upserts a dish per row, keyed by slug.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		d, catSlug, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if d == nil {
			continue
		}

		if catSlug != "" {
			category, err := i.categories.GetBySlug(ctx, catSlug)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return imported, fmt.Errorf("line %d: unknown category %q", line, catSlug)
				}
				return imported, err
			}
			d.CategoryID = &category.ID
		}

		if _, err := i.dishes.Upsert(ctx, *d); err != nil {
			return imported, fmt.Errorf("upsert dish %q: %w", d.Slug, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Dish, string, error) {
	name := pick(record, index, "name")
	if name == "" {
		// Blank rows are skippable, partial rows are not.
		if strings.Join(record, "") == "" {
			return nil, "", nil
		}
		return nil, "", errors.New("missing name")
	}

	centStr := pick(record, index, "price_cents")
	cents, err := strconv.ParseInt(centStr, 10, 64)
	if err != nil || cents <= 0 {
		return nil, "", fmt.Errorf("invalid price_cents %q for %q", centStr, name)
	}

	dishSlug := pick(record, index, "slug")
	if dishSlug == "" {
		dishSlug = slug.Make(name)
	}

	available := true
	if v := pick(record, index, "available"); v != "" {
		available = v == "true" || v == "1"
	}

	var prep int
	if v := pick(record, index, "preparation_time"); v != "" {
		prep, err = strconv.Atoi(v)
		if err != nil || prep < 0 {
			return nil, "", fmt.Errorf("invalid preparation_time %q for %q", v, name)
		}
	}

	d := &domain.Dish{
		Name:            name,
		Slug:            dishSlug,
		Description:     pick(record, index, "description"),
		Image:           pick(record, index, "image"),
		PriceCents:      cents,
		Available:       available,
		IsFeatured:      pick(record, index, "featured") == "true",
		PreparationTime: prep,
	}
	return d, pick(record, index, "category"), nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
