package core

import "github.com/goliatone/go-bakery/cart"

// Catalog is a per-call snapshot of the product list keyed by sku.
type Catalog struct {
	products []Product
	bySKU    map[string]Product
}

func NewCatalog(products []Product) Catalog {
	catalog := Catalog{
		products: append([]Product(nil), products...),
		bySKU:    make(map[string]Product, len(products)),
	}
	for _, product := range products {
		if product.SKU == "" {
			continue
		}
		if _, exists := catalog.bySKU[product.SKU]; exists {
			continue
		}
		catalog.bySKU[product.SKU] = product
	}
	return catalog
}

func (c Catalog) Has(sku string) bool {
	_, ok := c.bySKU[sku]
	return ok
}

func (c Catalog) Product(sku string) (Product, bool) {
	product, ok := c.bySKU[sku]
	return product, ok
}

func (c Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c Catalog) Len() int {
	return len(c.bySKU)
}

// Lines resolves display details for every item of a normalized cart.
func (c Catalog) Lines(in cart.Cart) []CartLine {
	lines := make([]CartLine, 0, len(in.Items))
	for _, item := range in.Items {
		line := CartLine{SKU: item.SKU, Qty: item.Qty, Name: item.SKU}
		if product, ok := c.bySKU[item.SKU]; ok {
			line.Name = product.Name
			line.Slug = product.Slug
			line.ImageURL = product.ImageURL
			line.PriceDisplay = product.PriceDisplay
		}
		lines = append(lines, line)
	}
	return lines
}

var _ cart.Catalog = Catalog{}
