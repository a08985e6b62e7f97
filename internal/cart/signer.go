package cart

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"warung/internal/domain"
)

// signer computes and checks the keyed integrity tag over cart content.
type signer struct {
	secret []byte
}

// signedPayload is the canonical serialization input. Field order is fixed by
// the struct and encoding/json sorts map keys, so sign and verify always agree
// on the exact bytes regardless of how a variants map was built.
type signedPayload struct {
	Items     []domain.CartLine `json:"items"`
	Timestamp int64             `json:"timestamp"`
}

func (s signer) sign(items []domain.CartLine, timestamp int64) (string, error) {
	payload, err := json.Marshal(signedPayload{Items: items, Timestamp: timestamp})
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// verify recomputes the expected tag and compares in constant time. Malformed
// hex or a wrong-length tag is a verification failure, never an error.
func (s signer) verify(items []domain.CartLine, timestamp int64, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	expected, err := s.sign(items, timestamp)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	return hmac.Equal(got, want)
}
