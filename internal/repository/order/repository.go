package order

import (
	"context"

	"warung/internal/domain"
)

// CreateOrderInput carries everything written at checkout in one transaction.
type CreateOrderInput struct {
	ID            string
	OrderNumber   string
	UserID        *string
	Type          string
	Note          string
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Items         []domain.OrderItem
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}
