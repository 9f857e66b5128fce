package cart

const (
	// MaxItems caps the number of distinct line items a cart can hold.
	MaxItems = 25
	// MaxQty is the largest quantity accepted for a single line item.
	MaxQty = 999
)

type LineItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type Cart struct {
	Items []LineItem `json:"items"`
}

// Catalog answers whether a sku is currently purchasable.
type Catalog interface {
	Has(sku string) bool
}

// SKUSet is a Catalog backed by a set of skus.
type SKUSet map[string]struct{}

func NewSKUSet(skus ...string) SKUSet {
	set := make(SKUSet, len(skus))
	for _, sku := range skus {
		set[sku] = struct{}{}
	}
	return set
}

func (s SKUSet) Has(sku string) bool {
	_, ok := s[sku]
	return ok
}

func (c Cart) Len() int {
	return len(c.Items)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
