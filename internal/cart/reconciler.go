// Package cart implements the signed stateless shopping cart. Cart state lives
// entirely in a client-held token authenticated with an HMAC tag; the token
// carries item identity and quantity only, so prices and availability are
// re-derived from the live catalog on every read.
package cart

import (
	"context"
	"errors"
	"maps"
	"time"

	"warung/internal/domain"
)

var (
	// ErrInvalidQuantity is returned for quantities outside the allowed range.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrItemNotFound is returned when a line index is out of bounds.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrCartFull is returned when the cart already holds the maximum number of lines.
	ErrCartFull = errors.New("cart full")
	// ErrDishUnavailable is returned when the dish is missing or not available.
	ErrDishUnavailable = errors.New("dish unavailable")
)

type catalog interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Dish, error)
}

// Reconciler is the single source of truth for what is actually in the cart,
// given a possibly stale or tampered token.
type Reconciler struct {
	codec   codec
	catalog catalog
}

// NewReconciler builds a Reconciler. The secret must be non-empty.
func NewReconciler(cfg Config, cat catalog) (*Reconciler, error) {
	return newReconciler(cfg, cat, time.Now)
}

func newReconciler(cfg Config, cat catalog, now func() time.Time) (*Reconciler, error) {
	c, err := newCodec(cfg, now)
	if err != nil {
		return nil, err
	}
	return &Reconciler{codec: c, catalog: cat}, nil
}

// MaxAge exposes the token freshness window so callers can align cookie TTLs.
func (r *Reconciler) MaxAge() time.Duration {
	return r.codec.maxAge
}

// View decodes the token and re-validates every line against the catalog.
// Integrity and expiry failures yield an empty view, not an error; lines whose
// dish is gone or unavailable are dropped. Catalog outages propagate so a
// backend failure is not masked as an empty cart.
func (r *Reconciler) View(ctx context.Context, token string) (domain.CartView, error) {
	items, ok := r.codec.decode(token)
	if !ok {
		return domain.EmptyCartView(), nil
	}

	view := domain.EmptyCartView()
	for _, item := range items {
		dish, err := r.catalog.GetBySlug(ctx, item.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return domain.CartView{}, err
		}
		if !dish.Available {
			continue
		}
		variants := item.Variants
		if variants == nil {
			variants = map[string]string{}
		}
		view.Items = append(view.Items, domain.CartViewItem{
			ProductID:  dish.ID,
			Slug:       dish.Slug,
			Name:       dish.Name,
			Image:      dish.Image,
			PriceCents: dish.PriceCents,
			Quantity:   item.Quantity,
			Variants:   variants,
		})
		view.TotalCents += dish.PriceCents * int64(item.Quantity)
		view.ItemCount += item.Quantity
	}
	return view, nil
}

// Add puts a dish in the cart, merging with an existing line when both the
// dish and the selected variants match. Merged quantities cap at MaxQuantity
// silently; a new line beyond MaxItems fails with ErrCartFull.
func (r *Reconciler) Add(ctx context.Context, token, slug string, quantity int, variants map[string]string) (string, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return "", ErrInvalidQuantity
	}
	dish, err := r.catalog.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrDishUnavailable
		}
		return "", err
	}
	if !dish.Available {
		return "", ErrDishUnavailable
	}
	if variants == nil {
		variants = map[string]string{}
	}

	decoded, _ := r.codec.decode(token)
	items, err := r.liveLines(ctx, decoded)
	if err != nil {
		return "", err
	}

	merged := false
	for i, item := range items {
		if item.ProductID == dish.ID && maps.Equal(item.Variants, variants) {
			items[i].Quantity = min(item.Quantity+quantity, MaxQuantity)
			merged = true
			break
		}
	}
	if !merged {
		if len(items) >= MaxItems {
			return "", ErrCartFull
		}
		items = append(items, domain.CartLine{
			ProductID: dish.ID,
			Slug:      dish.Slug,
			Quantity:  quantity,
			Variants:  variants,
			AddedAt:   r.codec.now().UnixMilli(),
		})
	}

	return r.codec.encode(items)
}

// UpdateQuantity replaces the quantity of the line at index. Quantity zero
// removes the line. The index refers to the cart as the client sees it, so
// lines hidden by View must be dropped before it is applied.
func (r *Reconciler) UpdateQuantity(ctx context.Context, token string, index, quantity int) (string, error) {
	if quantity < 0 || quantity > MaxQuantity {
		return "", ErrInvalidQuantity
	}
	decoded, _ := r.codec.decode(token)
	items, err := r.liveLines(ctx, decoded)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(items) {
		return "", ErrItemNotFound
	}
	if quantity == 0 {
		items = append(items[:index], items[index+1:]...)
	} else {
		items[index].Quantity = quantity
	}
	return r.codec.encode(items)
}

// Remove drops the line at index. Indexes are resolved against the visible
// cart, the same way UpdateQuantity does.
func (r *Reconciler) Remove(ctx context.Context, token string, index int) (string, error) {
	decoded, _ := r.codec.decode(token)
	items, err := r.liveLines(ctx, decoded)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(items) {
		return "", ErrItemNotFound
	}
	items = append(items[:index], items[index+1:]...)
	return r.codec.encode(items)
}

// liveLines keeps only the lines View would display, so mutation indexes and
// merge targets line up with the cart the client was shown. Catalog outages
// propagate rather than silently emptying the cart.
func (r *Reconciler) liveLines(ctx context.Context, items []domain.CartLine) ([]domain.CartLine, error) {
	live := items[:0]
	for _, item := range items {
		dish, err := r.catalog.GetBySlug(ctx, item.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !dish.Available {
			continue
		}
		live = append(live, item)
	}
	return live, nil
}

// Valid reports whether the token decodes cleanly. An empty token is a valid
// empty cart; a tampered or expired one is not.
func (r *Reconciler) Valid(token string) bool {
	if token == "" {
		return true
	}
	_, ok := r.codec.decode(token)
	return ok
}

// Clear returns the token representing zero items. Callers should delete the
// stored cookie outright.
func (r *Reconciler) Clear() string {
	return ""
}
