package sqlstore

import "github.com/goliatone/go-bakery/core"

var (
	_ core.ProductStore    = (*ProductStore)(nil)
	_ core.ProductStore    = (*CachedProductStore)(nil)
	_ core.RecipeStore     = (*RecipeStore)(nil)
	_ core.InquiryStore    = (*InquiryStore)(nil)
	_ core.StoreProvider   = (*RepositoryFactory)(nil)
	_ core.CatalogProvider = (*RepositoryFactory)(nil)
)
