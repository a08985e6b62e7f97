package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"warung/internal/domain"
	orderrepo "warung/internal/repository/order"
)

type stubOrderRepo struct {
	created  *orderrepo.CreateOrderInput
	orders   map[string]*domain.Order
	statuses []string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*domain.Order{}}
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	o := &domain.Order{
		ID:            in.ID,
		OrderNumber:   in.OrderNumber,
		UserID:        in.UserID,
		Type:          in.Type,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		SubtotalCents: in.SubtotalCents,
		TaxCents:      in.TaxCents,
		TotalCents:    in.TotalCents,
	}
	s.orders[in.ID] = o
	return o, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) List(_ context.Context, _ string, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	s.statuses = append(s.statuses, status)
	return o, nil
}

type stubCartReader struct {
	view domain.CartView
	err  error
}

func (s *stubCartReader) View(_ context.Context, _ string) (domain.CartView, error) {
	return s.view, s.err
}

type stubTaxLister struct {
	taxes []domain.Tax
	err   error
}

func (s *stubTaxLister) List(_ context.Context, _ bool) ([]domain.Tax, error) {
	return s.taxes, s.err
}

func filledCart() domain.CartView {
	return domain.CartView{
		Items: []domain.CartViewItem{
			{ProductID: 1, Slug: "nasi-goreng", Name: "Nasi Goreng", PriceCents: 3500, Quantity: 2},
			{ProductID: 2, Slug: "es-teh", Name: "Es Teh", PriceCents: 800, Quantity: 1},
		},
		TotalCents: 7800,
		ItemCount:  3,
	}
}

func TestCheckout(t *testing.T) {
	repo := newStubOrderRepo()
	svc := New(repo, &stubCartReader{view: filledCart()}, &stubTaxLister{taxes: []domain.Tax{
		{Type: domain.TaxTypePercentage, RateBasisPoint: 1000, IsActive: true},
	}})

	userID := "01ARZ3NDEKTSV4RRFFQ69G5FAV"
	order, err := svc.Checkout(context.Background(), "token", &userID, CheckoutInput{Type: "Delivery", Note: " extra sambal "})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.SubtotalCents != 7800 {
		t.Fatalf("subtotal = %d, want 7800", order.SubtotalCents)
	}
	if order.TaxCents != 780 {
		t.Fatalf("tax = %d, want 780", order.TaxCents)
	}
	if order.TotalCents != 8580 {
		t.Fatalf("total = %d, want 8580", order.TotalCents)
	}
	if order.Type != domain.OrderTypeDelivery {
		t.Fatalf("type = %q, want delivery", order.Type)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Fatalf("order number = %q", order.OrderNumber)
	}

	in := repo.created
	if in.Note != "extra sambal" {
		t.Fatalf("note = %q", in.Note)
	}
	if len(in.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(in.Items))
	}
	if in.Items[0].TotalCents != 7000 {
		t.Fatalf("line total = %d, want 7000", in.Items[0].TotalCents)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := New(newStubOrderRepo(), &stubCartReader{view: domain.EmptyCartView()}, &stubTaxLister{})

	_, err := svc.Checkout(context.Background(), "", nil, CheckoutInput{Type: "takeaway"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutInvalidType(t *testing.T) {
	svc := New(newStubOrderRepo(), &stubCartReader{view: filledCart()}, &stubTaxLister{})

	if _, err := svc.Checkout(context.Background(), "token", nil, CheckoutInput{Type: "dine-in"}); err == nil {
		t.Fatal("expected error for unknown order type")
	}
}

func TestCheckoutCartOutage(t *testing.T) {
	outage := errors.New("connection refused")
	svc := New(newStubOrderRepo(), &stubCartReader{err: outage}, &stubTaxLister{})

	_, err := svc.Checkout(context.Background(), "token", nil, CheckoutInput{Type: "delivery"})
	if !errors.Is(err, outage) {
		t.Fatalf("err = %v, want outage propagated", err)
	}
}

func TestCheckoutFixedAmountTax(t *testing.T) {
	repo := newStubOrderRepo()
	svc := New(repo, &stubCartReader{view: filledCart()}, &stubTaxLister{taxes: []domain.Tax{
		{Type: domain.TaxTypeFixedAmount, AmountCents: 500, IsActive: true},
	}})

	order, err := svc.Checkout(context.Background(), "token", nil, CheckoutInput{Type: "takeaway"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.TaxCents != 500 || order.TotalCents != 8300 {
		t.Fatalf("tax = %d total = %d", order.TaxCents, order.TotalCents)
	}
	if order.UserID != nil {
		t.Fatalf("guest order got user id %v", order.UserID)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newStubOrderRepo()
	svc := New(repo, &stubCartReader{view: filledCart()}, &stubTaxLister{})

	order, err := svc.Checkout(context.Background(), "token", nil, CheckoutInput{Type: "delivery"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	for _, status := range []string{domain.OrderStatusPreparing, domain.OrderStatusReady, domain.OrderStatusCompleted} {
		if _, err := svc.UpdateStatus(context.Background(), order.ID, status); err != nil {
			t.Fatalf("move to %s: %v", status, err)
		}
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateStatusSkippingStep(t *testing.T) {
	repo := newStubOrderRepo()
	svc := New(repo, &stubCartReader{view: filledCart()}, &stubTaxLister{})

	order, err := svc.Checkout(context.Background(), "token", nil, CheckoutInput{Type: "delivery"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusReady); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	// But cancelling straight from pending is fine.
	if _, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
}
