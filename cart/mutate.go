package cart

import (
	"math"
	"strconv"
	"strings"
)

// Upsert returns a new cart with sku set to qty. A qty of zero or less
// removes the sku. New skus are appended; the result is capped at MaxItems
// from the tail, so an append into a full cart has no effect. qty is not
// bounded above here; callers clamp with ClampQty.
func Upsert(c Cart, sku string, qty int) Cart {
	next := c.clone()
	index := -1
	for i, item := range next.Items {
		if item.SKU == sku {
			index = i
			break
		}
	}

	if qty <= 0 {
		if index >= 0 {
			next.Items = append(next.Items[:index], next.Items[index+1:]...)
		}
		return next
	}

	if index >= 0 {
		next.Items[index] = LineItem{SKU: sku, Qty: qty}
	} else {
		next.Items = append(next.Items, LineItem{SKU: sku, Qty: qty})
	}
	if len(next.Items) > MaxItems {
		next.Items = next.Items[:MaxItems]
	}
	return next
}

func CountItems(c Cart) int {
	total := 0
	for _, item := range c.Items {
		total += item.Qty
	}
	return total
}

// SkuMap indexes quantities by sku. Later duplicates overwrite earlier ones.
func SkuMap(c Cart) map[string]int {
	out := make(map[string]int, len(c.Items))
	for _, item := range c.Items {
		out[item.SKU] = item.Qty
	}
	return out
}

func ClampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// ParseQty reads a form quantity. Empty or unparsable input counts as 1 and
// the result is always within [1, MaxQty].
func ParseQty(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 1
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) {
		return 1
	}
	if parsed >= MaxQty {
		return MaxQty
	}
	if parsed < 1 {
		return 1
	}
	return ClampQty(int(parsed))
}
