package query

import (
	"github.com/goliatone/go-bakery/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[LoadCartMessage, core.CartView]       = (*LoadCartQuery)(nil)
	_ gocmd.Querier[ListProductsMessage, []core.Product]  = (*ListProductsQuery)(nil)
	_ gocmd.Querier[GetProductMessage, core.Product]      = (*GetProductQuery)(nil)
	_ gocmd.Querier[ListRecipesMessage, []core.Recipe]    = (*ListRecipesQuery)(nil)
	_ gocmd.Querier[GetRecipeMessage, core.Recipe]        = (*GetRecipeQuery)(nil)
	_ gocmd.Querier[ListInquiriesMessage, []core.Inquiry] = (*ListInquiriesQuery)(nil)
	_ gocmd.Querier[GetInquiryMessage, core.Inquiry]      = (*GetInquiryQuery)(nil)
)
