package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw is an authenticated but unvalidated cart payload: any JSON value.
// Normalize is the only way to turn it into a Cart.
type Raw struct {
	value any
}

func ParseRaw(data []byte) (Raw, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return Raw{}, err
	}
	return Raw{value: value}, nil
}

// RawValue wraps an already decoded value, e.g. map[string]any.
func RawValue(value any) Raw {
	return Raw{value: value}
}

func (r Raw) IsZero() bool {
	return r.value == nil
}

// Normalize validates raw against catalog and the cart limits. Invalid
// entries are dropped, never reported. Only the first entry for a sku is
// kept, and at most MaxItems entries are accepted.
func Normalize(raw Raw, catalog Catalog) Cart {
	out := Cart{Items: []LineItem{}}

	object, ok := raw.value.(map[string]any)
	if !ok {
		return out
	}
	candidates, ok := object["items"].([]any)
	if !ok {
		return out
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		entry, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		sku, ok := entry["sku"].(string)
		if !ok || sku == "" {
			continue
		}
		qty, ok := coerceQty(entry["qty"])
		if !ok || qty < 1 || qty > MaxQty {
			continue
		}
		if catalog == nil || !catalog.Has(sku) {
			continue
		}
		if _, dup := seen[sku]; dup {
			continue
		}
		seen[sku] = struct{}{}
		out.Items = append(out.Items, LineItem{SKU: sku, Qty: int(math.Floor(qty))})
		if len(out.Items) >= MaxItems {
			break
		}
	}
	return out
}

// coerceQty follows loose numeric coercion: numbers pass through, numeric
// strings are parsed, booleans and null map to 1/0, everything else fails.
func coerceQty(value any) (float64, bool) {
	var qty float64
	switch typed := value.(type) {
	case nil:
		qty = 0
	case bool:
		if typed {
			qty = 1
		}
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		qty = parsed
	case float64:
		qty = typed
	case int:
		qty = float64(typed)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			qty = 0
			break
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		qty = parsed
	default:
		return 0, false
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, false
	}
	return qty, true
}
