package domain

import "time"

const (
	TaxTypePercentage  = "percentage"
	TaxTypeFixedAmount = "fixed_amount"
)

// Tax is either a percentage (rate in basis points, 100 = 1%) or a fixed
// amount in cents applied to an order subtotal.
type Tax struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Type           string    `json:"type"`
	RateBasisPoint int64     `json:"rateBasisPoints,omitempty"`
	AmountCents    int64     `json:"amountCents,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Apply returns the tax owed on a subtotal in cents.
func (t Tax) Apply(subtotalCents int64) int64 {
	if t.Type == TaxTypeFixedAmount {
		return t.AmountCents
	}
	return subtotalCents * t.RateBasisPoint / 10000
}
