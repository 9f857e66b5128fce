package cart

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const tokenSeparator = "."

var ErrMissingSecret = errors.New("cart: signing secret is required")

// Codec signs and verifies cart tokens of the form payload.signature, where
// payload is the base64url JSON cart and signature the base64url
// HMAC-SHA256 of the payload string.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(bytes.TrimSpace(secret)) == 0 {
		return nil, ErrMissingSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key}, nil
}

func NewCodecFromString(secret string) (*Codec, error) {
	return NewCodec([]byte(secret))
}

type wireItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type wireCart struct {
	Items []wireItem `json:"items"`
}

func (c *Codec) Encode(cart Cart) string {
	wire := wireCart{Items: make([]wireItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		wire.Items = append(wire.Items, wireItem{SKU: item.SKU, Qty: item.Qty})
	}
	// a struct of strings and ints always marshals
	data, _ := json.Marshal(wire)

	payload := base64.RawURLEncoding.EncodeToString(data)
	return payload + tokenSeparator + c.sign(payload)
}

// Decode authenticates token and returns its raw payload. The payload is not
// validated beyond being JSON; callers must pass it through Normalize. Any
// failure yields ok=false and never an error.
func (c *Codec) Decode(token string) (Raw, bool) {
	if c == nil || token == "" {
		return Raw{}, false
	}
	parts := strings.Split(token, tokenSeparator)
	if len(parts) != 2 {
		return Raw{}, false
	}
	payload, signature := parts[0], parts[1]
	if payload == "" || signature == "" {
		return Raw{}, false
	}

	expected := c.sign(payload)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return Raw{}, false
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Raw{}, false
	}
	raw, err := ParseRaw(data)
	if err != nil {
		return Raw{}, false
	}
	return raw, true
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
