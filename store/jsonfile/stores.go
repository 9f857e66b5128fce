package jsonfile

import "github.com/goliatone/go-bakery/core"

// Stores provides the file-backed product and recipe stores rooted at one
// data directory. InquiryStore is always nil.
type Stores struct {
	products *ProductStore
	recipes  *RecipeStore
}

func NewStores(dir string) *Stores {
	return &Stores{
		products: NewProductStore(dir),
		recipes:  NewRecipeStore(dir),
	}
}

func (s *Stores) ProductStore() core.ProductStore {
	if s == nil || s.products == nil {
		return nil
	}
	return s.products
}

func (s *Stores) RecipeStore() core.RecipeStore {
	if s == nil || s.recipes == nil {
		return nil
	}
	return s.recipes
}

func (s *Stores) InquiryStore() core.InquiryStore {
	return nil
}

var (
	_ core.ProductStore  = (*ProductStore)(nil)
	_ core.RecipeStore   = (*RecipeStore)(nil)
	_ core.StoreProvider = (*Stores)(nil)
)
