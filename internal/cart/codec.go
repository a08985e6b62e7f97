package cart

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"warung/internal/domain"
)

const (
	envelopeVersion = 1

	// MaxItems caps the number of distinct lines in a cart.
	MaxItems = 50
	// MaxQuantity caps the quantity of a single line.
	MaxQuantity = 99
)

// Config carries the secret and freshness window for the token codec. Both are
// injected at construction so tests can run with distinct keys and windows.
type Config struct {
	Secret []byte
	MaxAge time.Duration
}

// codec converts between the client-held token string and the structured
// envelope, enforcing shape, freshness and integrity in one place.
type codec struct {
	signer signer
	maxAge time.Duration
	now    func() time.Time
}

func newCodec(cfg Config, now func() time.Time) (codec, error) {
	if len(cfg.Secret) == 0 {
		return codec{}, errors.New("cart secret required")
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return codec{signer: signer{secret: cfg.Secret}, maxAge: maxAge, now: now}, nil
}

// decode parses a token into its line items. Any doubt about shape, freshness
// or integrity yields ok=false and never a partially trusted item list: a
// tampered or expired token is indistinguishable from no cart at all.
func (c codec) decode(token string) ([]domain.CartLine, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	var env domain.CartEnvelope
	if err := json.Unmarshal([]byte(token), &env); err != nil {
		return nil, false
	}
	if env.Version != envelopeVersion || env.Items == nil || env.Signature == "" || env.Timestamp <= 0 {
		return nil, false
	}
	if len(env.Items) > MaxItems {
		return nil, false
	}
	if c.now().UnixMilli()-env.Timestamp > c.maxAge.Milliseconds() {
		return nil, false
	}
	if !c.signer.verify(env.Items, env.Timestamp, env.Signature) {
		return nil, false
	}
	for _, item := range env.Items {
		if item.Slug == "" || item.Quantity < 1 || item.Quantity > MaxQuantity {
			return nil, false
		}
	}
	return env.Items, true
}

// encode strips items to their minimal untrusted form, stamps a fresh
// timestamp, signs the payload and serializes the envelope.
func (c codec) encode(items []domain.CartLine) (string, error) {
	minimal := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		variants := item.Variants
		if variants == nil {
			variants = map[string]string{}
		}
		addedAt := item.AddedAt
		if addedAt == 0 {
			addedAt = c.now().UnixMilli()
		}
		minimal = append(minimal, domain.CartLine{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Quantity:  item.Quantity,
			Variants:  variants,
			AddedAt:   addedAt,
		})
	}

	timestamp := c.now().UnixMilli()
	signature, err := c.signer.sign(minimal, timestamp)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(domain.CartEnvelope{
		Version:   envelopeVersion,
		Items:     minimal,
		Timestamp: timestamp,
		Signature: signature,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
