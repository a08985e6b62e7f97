package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

type dishSeed struct {
	Category    string
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Featured    bool
	PrepMinutes int
}

type variantSeed struct {
	DishSlug        string
	Type            string
	Name            string
	PriceDeltaCents int64
	IsDefault       bool
}

// Apply inserts demo menu data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		Name string
		Slug string
		Sort int
	}{
		{"Main Dishes", "main-dishes", 1},
		{"Drinks", "drinks", 2},
		{"Snacks", "snacks", 3},
	}
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c.Name, c.Slug, c.Sort); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
	}

	dishes := []dishSeed{
		{"main-dishes", "Nasi Goreng Spesial", "nasi-goreng-spesial", "Fried rice with chicken, egg and prawn crackers", 3500, true, 15},
		{"main-dishes", "Mie Ayam", "mie-ayam", "Chicken noodles with wontons", 3000, false, 12},
		{"main-dishes", "Sate Ayam", "sate-ayam", "Ten chicken skewers with peanut sauce", 4000, true, 20},
		{"drinks", "Es Teh Manis", "es-teh-manis", "Sweet iced tea", 800, false, 3},
		{"drinks", "Es Jeruk", "es-jeruk", "Fresh orange juice over ice", 1200, false, 5},
		{"snacks", "Pisang Goreng", "pisang-goreng", "Fried banana fritters", 1500, false, 10},
	}
	for _, d := range dishes {
		if err := upsertDish(ctx, pool, d); err != nil {
			return fmt.Errorf("upsert dish %s: %w", d.Slug, err)
		}
	}

	variants := []variantSeed{
		{"nasi-goreng-spesial", "spice", "Mild", 0, true},
		{"nasi-goreng-spesial", "spice", "Medium", 0, false},
		{"nasi-goreng-spesial", "spice", "Hot", 0, false},
		{"nasi-goreng-spesial", "portion", "Regular", 0, true},
		{"nasi-goreng-spesial", "portion", "Large", 800, false},
		{"es-teh-manis", "size", "Regular", 0, true},
		{"es-teh-manis", "size", "Large", 300, false},
	}
	for _, v := range variants {
		if err := upsertVariant(ctx, pool, v); err != nil {
			return fmt.Errorf("upsert variant %s/%s: %w", v.DishSlug, v.Name, err)
		}
	}

	if err := upsertTax(ctx, pool, "PB1", "Restaurant tax", 1000); err != nil {
		return fmt.Errorf("upsert tax: %w", err)
	}

	if err := upsertAdmin(ctx, pool); err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, name, slug string, sort int) error {
	const q = `
INSERT INTO categories (name, slug, sort_order)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, name, slug, sort)
	return err
}

func upsertDish(ctx context.Context, pool *pgxpool.Pool, d dishSeed) error {
	const q = `
INSERT INTO dishes (category_id, name, slug, description, price_cents, is_featured, preparation_time)
VALUES ((SELECT id FROM categories WHERE slug = $1), $2, $3, $4, $5, $6, $7)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    is_featured = EXCLUDED.is_featured,
    preparation_time = EXCLUDED.preparation_time
`
	_, err := pool.Exec(ctx, q, d.Category, d.Name, d.Slug, d.Description, d.PriceCents, d.Featured, d.PrepMinutes)
	return err
}

func upsertVariant(ctx context.Context, pool *pgxpool.Pool, v variantSeed) error {
	const q = `
INSERT INTO dish_variants (dish_id, type, name, price_delta_cents, is_default)
VALUES ((SELECT id FROM dishes WHERE slug = $1), $2, $3, $4, $5)
ON CONFLICT (dish_id, type, name) DO UPDATE
SET price_delta_cents = EXCLUDED.price_delta_cents,
    is_default = EXCLUDED.is_default
`
	_, err := pool.Exec(ctx, q, v.DishSlug, v.Type, v.Name, v.PriceDeltaCents, v.IsDefault)
	return err
}

func upsertTax(ctx context.Context, pool *pgxpool.Pool, name, description string, basisPoints int64) error {
	const q = `
INSERT INTO taxes (name, description, type, rate_basis_points)
SELECT $1, $2, 'percentage', $3
WHERE NOT EXISTS (SELECT 1 FROM taxes WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, name, description, basisPoints)
	return err
}

// upsertAdmin creates the initial admin account. The password comes from
// SEED_ADMIN_PASSWORD so no credential ships in the source tree.
func upsertAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return nil
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@warung.local"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, 'admin')
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
`
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
	_, err = pool.Exec(ctx, q, id, "Admin", email, string(hash))
	return err
}
