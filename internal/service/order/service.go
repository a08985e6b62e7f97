package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"warung/internal/domain"
	orderrepo "warung/internal/repository/order"
)

var (
	// ErrEmptyCart is returned when checkout finds no surviving cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition is returned for a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)

type cartReader interface {
	View(ctx context.Context, token string) (domain.CartView, error)
}

type taxLister interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Tax, error)
}

// Service turns a reconciled cart into an immutable order.
type Service struct {
	repo  orderrepo.Repository
	carts cartReader
	taxes taxLister
	now   func() time.Time
}

func New(repo orderrepo.Repository, carts cartReader, taxes taxLister) *Service {
	return &Service{repo: repo, carts: carts, taxes: taxes, now: time.Now}
}

type CheckoutInput struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

// Checkout re-reconciles the cart token, prices the order with active taxes
// and writes it in one transaction. The cart prices come from the catalog at
// this moment, never from the client.
func (s *Service) Checkout(ctx context.Context, cartToken string, userID *string, in CheckoutInput) (*domain.Order, error) {
	orderType := strings.TrimSpace(strings.ToLower(in.Type))
	if orderType != domain.OrderTypeDelivery && orderType != domain.OrderTypeTakeaway {
		return nil, errors.New("type must be delivery or takeaway")
	}

	view, err := s.carts.View(ctx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	taxes, err := s.taxes.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var taxCents int64
	for _, t := range taxes {
		taxCents += t.Apply(view.TotalCents)
	}

	items := make([]domain.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, domain.OrderItem{
			DishID:         item.ProductID,
			DishName:       item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.PriceCents,
			TotalCents:     item.PriceCents * int64(item.Quantity),
			Variants:       item.Variants,
		})
	}

	return s.repo.Create(ctx, orderrepo.CreateOrderInput{
		ID:            ulid.Make().String(),
		OrderNumber:   s.orderNumber(),
		UserID:        userID,
		Type:          orderType,
		Note:          strings.TrimSpace(in.Note),
		SubtotalCents: view.TotalCents,
		TaxCents:      taxCents,
		TotalCents:    view.TotalCents + taxCents,
		Items:         items,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, status, limit, offset)
}

// UpdateStatus moves an order along pending → preparing → ready → completed,
// with cancellation allowed from any non-terminal status.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidStatusTransition(existing.Status, status) {
		return nil, ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// orderNumber builds a short human-readable reference like ORD-240830-7K3F9Q.
func (s *Service) orderNumber() string {
	id := ulid.Make().String()
	return fmt.Sprintf("ORD-%s-%s", s.now().UTC().Format("060102"), id[len(id)-6:])
}
