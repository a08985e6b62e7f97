package domain

import "time"

const (
	OrderTypeDelivery = "delivery"
	OrderTypeTakeaway = "takeaway"

	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order is an immutable checkout record. Unlike the cart token, order items
// snapshot the price at checkout time.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	UserID        *string     `json:"userId,omitempty"`
	Type          string      `json:"type"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	SubtotalCents int64       `json:"subtotalCents"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`
	Note          string      `json:"note,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Items         []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID             int64             `json:"id"`
	OrderID        string            `json:"orderId"`
	DishID         int64             `json:"dishId"`
	DishName       string            `json:"dishName"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int64             `json:"unitPriceCents"`
	TotalCents     int64             `json:"totalCents"`
	Variants       map[string]string `json:"variants,omitempty"`
}

// ValidStatusTransition reports whether an order may move from one status to
// another. Cancellation is allowed from any non-terminal status.
func ValidStatusTransition(from, to string) bool {
	if from == OrderStatusCompleted || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPreparing
	case OrderStatusPreparing:
		return to == OrderStatusReady
	case OrderStatusReady:
		return to == OrderStatusCompleted
	}
	return false
}
