package domain

// CartLine is one entry of the client-held cart token in its minimal untrusted
// form. It carries identity and intent only; price, name and image are always
// re-derived from the catalog at read time and never stored in the token.
type CartLine struct {
	ProductID int64             `json:"id"`
	Slug      string            `json:"slug"`
	Quantity  int               `json:"quantity"`
	Variants  map[string]string `json:"variants"`
	AddedAt   int64             `json:"addedAt"`
}

// CartEnvelope is the full token payload: items, a creation timestamp in epoch
// milliseconds and a hex HMAC signature over both.
type CartEnvelope struct {
	Version   int        `json:"v"`
	Items     []CartLine `json:"items"`
	Timestamp int64      `json:"timestamp"`
	Signature string     `json:"signature"`
}

// CartViewItem is a reconciled line with the authoritative catalog price.
type CartViewItem struct {
	ProductID  int64             `json:"id"`
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	Image      string            `json:"image,omitempty"`
	PriceCents int64             `json:"priceCents"`
	Quantity   int               `json:"quantity"`
	Variants   map[string]string `json:"variants"`
}

// CartView is the display-ready cart. Totals are derived on every read and
// never persisted, so they cannot drift from catalog reality.
type CartView struct {
	Items      []CartViewItem `json:"items"`
	TotalCents int64          `json:"totalCents"`
	ItemCount  int            `json:"itemCount"`
}

// EmptyCartView returns a zero-value view with a non-nil item slice.
func EmptyCartView() CartView {
	return CartView{Items: []CartViewItem{}}
}
