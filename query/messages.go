package query

import "strings"

const (
	TypeLoadCart      = "bakery.query.cart.load"
	TypeListProducts  = "bakery.query.product.list"
	TypeGetProduct    = "bakery.query.product.get"
	TypeListRecipes   = "bakery.query.recipe.list"
	TypeGetRecipe     = "bakery.query.recipe.get"
	TypeListInquiries = "bakery.query.inquiry.list"
	TypeGetInquiry    = "bakery.query.inquiry.get"
)

// LoadCartMessage reads the cart carried by a token. An empty or invalid
// token is a valid message and yields an empty cart.
type LoadCartMessage struct {
	Token string
}

func (LoadCartMessage) Type() string { return TypeLoadCart }

type ListProductsMessage struct{}

func (ListProductsMessage) Type() string { return TypeListProducts }

// GetProductMessage looks a product up by exactly one of ID, Slug or SKU.
type GetProductMessage struct {
	ID   string
	Slug string
	SKU  string
}

func (GetProductMessage) Type() string { return TypeGetProduct }

func (m GetProductMessage) Validate() error {
	set := 0
	for _, value := range []string{m.ID, m.Slug, m.SKU} {
		if strings.TrimSpace(value) != "" {
			set++
		}
	}
	switch set {
	case 0:
		return queryValidationError("id", "one of id, slug or sku is required")
	case 1:
		return nil
	default:
		return queryInvalidInputError("query: only one of id, slug or sku may be set")
	}
}

type ListRecipesMessage struct {
	IncludeDrafts bool
}

func (ListRecipesMessage) Type() string { return TypeListRecipes }

// GetRecipeMessage looks a recipe up by ID (admin) or Slug.
type GetRecipeMessage struct {
	ID            string
	Slug          string
	IncludeDrafts bool
}

func (GetRecipeMessage) Type() string { return TypeGetRecipe }

func (m GetRecipeMessage) Validate() error {
	id := strings.TrimSpace(m.ID)
	slug := strings.TrimSpace(m.Slug)
	if id == "" && slug == "" {
		return queryValidationError("slug", "id or slug is required")
	}
	if id != "" && slug != "" {
		return queryInvalidInputError("query: only one of id or slug may be set")
	}
	return nil
}

type ListInquiriesMessage struct{}

func (ListInquiriesMessage) Type() string { return TypeListInquiries }

type GetInquiryMessage struct {
	ID string
}

func (GetInquiryMessage) Type() string { return TypeGetInquiry }

func (m GetInquiryMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return queryValidationError("id", "id is required")
	}
	return nil
}
