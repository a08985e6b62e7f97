package domain

import "time"

const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// Discount is a time-windowed promotion shown on the storefront.
type Discount struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Percent     int       `json:"percent,omitempty"`
	AmountCents int64     `json:"amountCents,omitempty"`
	IsActive    bool      `json:"isActive"`
	StartsAt    time.Time `json:"startsAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Live reports whether the discount is active and inside its window at now.
func (d Discount) Live(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartsAt) && !now.After(d.ExpiresAt)
}
