package cart

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"warung/internal/domain"
)

func testCodec(t *testing.T, now func() time.Time) codec {
	t.Helper()
	c, err := newCodec(Config{Secret: []byte("test-secret"), MaxAge: 24 * time.Hour}, now)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestCodecRequiresSecret(t *testing.T) {
	if _, err := newCodec(Config{}, nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	c := testCodec(t, nil)
	items := []domain.CartLine{
		{ProductID: 1, Slug: "nasi-goreng", Quantity: 2, Variants: map[string]string{"size": "large"}, AddedAt: 111},
		{ProductID: 2, Slug: "es-teh", Quantity: 1, Variants: map[string]string{}, AddedAt: 222},
	}

	token, err := c.encode(items)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, ok := c.decode(token)
	if !ok {
		t.Fatal("decode rejected a fresh token")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Slug != "nasi-goreng" || got[0].Quantity != 2 || got[0].Variants["size"] != "large" {
		t.Fatalf("unexpected first item: %+v", got[0])
	}
	if got[1].ProductID != 2 || got[1].AddedAt != 222 {
		t.Fatalf("unexpected second item: %+v", got[1])
	}
}

func TestCodecRejectsEmptyAndGarbage(t *testing.T) {
	c := testCodec(t, nil)
	for _, token := range []string{"", "   ", "not-json", `{"items":`, `{"v":1}`} {
		if _, ok := c.decode(token); ok {
			t.Fatalf("decode accepted %q", token)
		}
	}
}

func TestCodecRejectsMissingFields(t *testing.T) {
	c := testCodec(t, nil)
	ts := time.Now().UnixMilli()
	for name, token := range map[string]string{
		"no items":     `{"v":1,"timestamp":` + itoa(ts) + `,"signature":"ab"}`,
		"no signature": `{"v":1,"items":[],"timestamp":` + itoa(ts) + `}`,
		"no timestamp": `{"v":1,"items":[],"signature":"ab"}`,
		"bad version":  `{"v":2,"items":[],"timestamp":` + itoa(ts) + `,"signature":"ab"}`,
	} {
		if _, ok := c.decode(token); ok {
			t.Fatalf("decode accepted token with %s", name)
		}
	}
}

func TestCodecTamperEvidence(t *testing.T) {
	c := testCodec(t, nil)
	token, err := c.encode([]domain.CartLine{{ProductID: 1, Slug: "nasi-goreng", Quantity: 2}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var env domain.CartEnvelope
	if err := json.Unmarshal([]byte(token), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tampered := env
	tampered.Items = append([]domain.CartLine{}, env.Items...)
	tampered.Items[0].Quantity = 99
	if _, ok := c.decode(marshal(t, tampered)); ok {
		t.Fatal("decode accepted tampered items")
	}

	tampered = env
	tampered.Timestamp++
	if _, ok := c.decode(marshal(t, tampered)); ok {
		t.Fatal("decode accepted tampered timestamp")
	}

	tampered = env
	tampered.Signature = flipHexByte(env.Signature)
	if _, ok := c.decode(marshal(t, tampered)); ok {
		t.Fatal("decode accepted tampered signature")
	}

	tampered = env
	tampered.Signature = "zz" + env.Signature[2:]
	if _, ok := c.decode(marshal(t, tampered)); ok {
		t.Fatal("decode accepted malformed hex signature")
	}
}

func TestCodecRejectsWrongKey(t *testing.T) {
	c := testCodec(t, nil)
	token, err := c.encode([]domain.CartLine{{ProductID: 1, Slug: "sate", Quantity: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	other, err := newCodec(Config{Secret: []byte("different"), MaxAge: 24 * time.Hour}, nil)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	if _, ok := other.decode(token); ok {
		t.Fatal("decode accepted a token signed with another key")
	}
}

func TestCodecExpiry(t *testing.T) {
	current := time.Now()
	c := testCodec(t, func() time.Time { return current })

	token, err := c.encode([]domain.CartLine{{ProductID: 1, Slug: "sate", Quantity: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	current = current.Add(23 * time.Hour)
	if _, ok := c.decode(token); !ok {
		t.Fatal("decode rejected a token inside the freshness window")
	}

	current = current.Add(2 * time.Hour)
	if _, ok := c.decode(token); ok {
		t.Fatal("decode accepted an expired token with a valid signature")
	}
}

func TestCodecRejectsOutOfRangeQuantities(t *testing.T) {
	c := testCodec(t, nil)
	// Sign out-of-range content directly so the signature itself is valid.
	items := []domain.CartLine{{ProductID: 1, Slug: "sate", Quantity: 100, Variants: map[string]string{}}}
	ts := time.Now().UnixMilli()
	sig, err := c.signer.sign(items, ts)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	token := marshal(t, domain.CartEnvelope{Version: 1, Items: items, Timestamp: ts, Signature: sig})
	if _, ok := c.decode(token); ok {
		t.Fatal("decode accepted quantity above the cap")
	}
}

func TestCodecEncodeStampsFreshTimestampAndAddedAt(t *testing.T) {
	current := time.UnixMilli(1_700_000_000_000)
	c := testCodec(t, func() time.Time { return current })

	token, err := c.encode([]domain.CartLine{{ProductID: 1, Slug: "sate", Quantity: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var env domain.CartEnvelope
	if err := json.Unmarshal([]byte(token), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Timestamp != current.UnixMilli() {
		t.Fatalf("expected timestamp %d, got %d", current.UnixMilli(), env.Timestamp)
	}
	if env.Items[0].AddedAt != current.UnixMilli() {
		t.Fatalf("expected addedAt backfilled, got %d", env.Items[0].AddedAt)
	}
	if env.Items[0].Variants == nil {
		t.Fatal("expected variants normalized to an empty map")
	}
}

func marshal(t *testing.T, env domain.CartEnvelope) string {
	t.Helper()
	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

func flipHexByte(sig string) string {
	first := "0"
	if strings.HasPrefix(sig, "0") {
		first = "1"
	}
	return first + sig[1:]
}

func itoa(v int64) string {
	out, _ := json.Marshal(v)
	return string(out)
}
