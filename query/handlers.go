package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-bakery/core"
)

type CartReader interface {
	LoadCart(ctx context.Context, token string) (core.CartView, error)
}

type ProductReader interface {
	ListProducts(ctx context.Context) ([]core.Product, error)
	GetProduct(ctx context.Context, id string) (core.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (core.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (core.Product, error)
}

type RecipeReader interface {
	ListRecipes(ctx context.Context, includeDrafts bool) ([]core.Recipe, error)
	GetRecipe(ctx context.Context, id string) (core.Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string, includeDrafts bool) (core.Recipe, error)
}

type InquiryReader interface {
	ListInquiries(ctx context.Context) ([]core.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (core.Inquiry, error)
}

type LoadCartQuery struct {
	reader CartReader
}

func NewLoadCartQuery(reader CartReader) *LoadCartQuery {
	return &LoadCartQuery{reader: reader}
}

func (q *LoadCartQuery) Query(ctx context.Context, msg LoadCartMessage) (core.CartView, error) {
	if q == nil || q.reader == nil {
		return core.CartView{}, queryDependencyError("query: cart reader is required")
	}
	return q.reader.LoadCart(ctx, msg.Token)
}

type ListProductsQuery struct {
	reader ProductReader
}

func NewListProductsQuery(reader ProductReader) *ListProductsQuery {
	return &ListProductsQuery{reader: reader}
}

func (q *ListProductsQuery) Query(ctx context.Context, _ ListProductsMessage) ([]core.Product, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: product reader is required")
	}
	return q.reader.ListProducts(ctx)
}

type GetProductQuery struct {
	reader ProductReader
}

func NewGetProductQuery(reader ProductReader) *GetProductQuery {
	return &GetProductQuery{reader: reader}
}

func (q *GetProductQuery) Query(ctx context.Context, msg GetProductMessage) (core.Product, error) {
	if q == nil || q.reader == nil {
		return core.Product{}, queryDependencyError("query: product reader is required")
	}
	switch {
	case strings.TrimSpace(msg.ID) != "":
		return q.reader.GetProduct(ctx, msg.ID)
	case strings.TrimSpace(msg.Slug) != "":
		return q.reader.GetProductBySlug(ctx, msg.Slug)
	case strings.TrimSpace(msg.SKU) != "":
		return q.reader.GetProductBySKU(ctx, msg.SKU)
	default:
		return core.Product{}, msg.Validate()
	}
}

type ListRecipesQuery struct {
	reader RecipeReader
}

func NewListRecipesQuery(reader RecipeReader) *ListRecipesQuery {
	return &ListRecipesQuery{reader: reader}
}

func (q *ListRecipesQuery) Query(ctx context.Context, msg ListRecipesMessage) ([]core.Recipe, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: recipe reader is required")
	}
	return q.reader.ListRecipes(ctx, msg.IncludeDrafts)
}

type GetRecipeQuery struct {
	reader RecipeReader
}

func NewGetRecipeQuery(reader RecipeReader) *GetRecipeQuery {
	return &GetRecipeQuery{reader: reader}
}

func (q *GetRecipeQuery) Query(ctx context.Context, msg GetRecipeMessage) (core.Recipe, error) {
	if q == nil || q.reader == nil {
		return core.Recipe{}, queryDependencyError("query: recipe reader is required")
	}
	if strings.TrimSpace(msg.ID) != "" {
		return q.reader.GetRecipe(ctx, msg.ID)
	}
	if strings.TrimSpace(msg.Slug) != "" {
		return q.reader.GetRecipeBySlug(ctx, msg.Slug, msg.IncludeDrafts)
	}
	return core.Recipe{}, msg.Validate()
}

type ListInquiriesQuery struct {
	reader InquiryReader
}

func NewListInquiriesQuery(reader InquiryReader) *ListInquiriesQuery {
	return &ListInquiriesQuery{reader: reader}
}

func (q *ListInquiriesQuery) Query(ctx context.Context, _ ListInquiriesMessage) ([]core.Inquiry, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: inquiry reader is required")
	}
	return q.reader.ListInquiries(ctx)
}

type GetInquiryQuery struct {
	reader InquiryReader
}

func NewGetInquiryQuery(reader InquiryReader) *GetInquiryQuery {
	return &GetInquiryQuery{reader: reader}
}

func (q *GetInquiryQuery) Query(ctx context.Context, msg GetInquiryMessage) (core.Inquiry, error) {
	if q == nil || q.reader == nil {
		return core.Inquiry{}, queryDependencyError("query: inquiry reader is required")
	}
	return q.reader.GetInquiry(ctx, msg.ID)
}
