package sqlstore

import (
	"time"

	"github.com/goliatone/go-bakery/core"
	"github.com/uptrace/bun"
)

type productRecord struct {
	bun.BaseModel `bun:"table:bakery_products,alias:bp"`

	ID           string    `bun:"id,pk"`
	SKU          string    `bun:"sku,notnull"`
	Slug         string    `bun:"slug,notnull"`
	Name         string    `bun:"name,notnull"`
	Description  string    `bun:"description,notnull"`
	ImageURL     string    `bun:"image_url,notnull"`
	PriceDisplay string    `bun:"price_display,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type recipeRecord struct {
	bun.BaseModel `bun:"table:bakery_recipes,alias:br"`

	ID         string    `bun:"id,pk"`
	Slug       string    `bun:"slug,notnull"`
	Title      string    `bun:"title,notnull"`
	ImageURL   string    `bun:"image_url,notnull"`
	RecipeHTML string    `bun:"recipe_html,notnull"`
	Published  bool      `bun:"published,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type inquiryRecord struct {
	bun.BaseModel `bun:"table:bakery_inquiries,alias:bi"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull"`
	Phone     string    `bun:"phone,notnull"`
	Company   string    `bun:"company,notnull"`
	Message   string    `bun:"message,notnull"`
	SourceURL string    `bun:"source_url,notnull"`
	Status    string    `bun:"status,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type inquiryItemRecord struct {
	bun.BaseModel `bun:"table:bakery_inquiry_items,alias:bii"`

	ID            string `bun:"id,pk"`
	InquiryID     string `bun:"inquiry_id,notnull"`
	SKU           string `bun:"sku,notnull"`
	Qty           int    `bun:"qty,notnull"`
	NameSnapshot  string `bun:"name_snapshot,notnull"`
	PriceSnapshot string `bun:"price_snapshot,notnull"`
	Position      int    `bun:"position,notnull"`
}

func newProductRecord(product core.Product) *productRecord {
	return &productRecord{
		ID:           product.ID,
		SKU:          product.SKU,
		Slug:         product.Slug,
		Name:         product.Name,
		Description:  product.Description,
		ImageURL:     product.ImageURL,
		PriceDisplay: product.PriceDisplay,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func (r *productRecord) toDomain() core.Product {
	if r == nil {
		return core.Product{}
	}
	return core.Product{
		ID:           r.ID,
		SKU:          r.SKU,
		Slug:         r.Slug,
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		PriceDisplay: r.PriceDisplay,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func newRecipeRecord(recipe core.Recipe) *recipeRecord {
	return &recipeRecord{
		ID:         recipe.ID,
		Slug:       recipe.Slug,
		Title:      recipe.Title,
		ImageURL:   recipe.ImageURL,
		RecipeHTML: recipe.RecipeHTML,
		Published:  recipe.Published,
		CreatedAt:  recipe.CreatedAt,
		UpdatedAt:  recipe.UpdatedAt,
	}
}

func (r *recipeRecord) toDomain() core.Recipe {
	if r == nil {
		return core.Recipe{}
	}
	return core.Recipe{
		ID:         r.ID,
		Slug:       r.Slug,
		Title:      r.Title,
		ImageURL:   r.ImageURL,
		RecipeHTML: r.RecipeHTML,
		Published:  r.Published,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

func newInquiryRecord(inquiry core.Inquiry) *inquiryRecord {
	return &inquiryRecord{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Company:   inquiry.Company,
		Message:   inquiry.Message,
		SourceURL: inquiry.SourceURL,
		Status:    inquiry.Status,
		CreatedAt: inquiry.CreatedAt,
	}
}

func (r *inquiryRecord) toDomain(items []*inquiryItemRecord) core.Inquiry {
	if r == nil {
		return core.Inquiry{}
	}
	out := core.Inquiry{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Message:   r.Message,
		SourceURL: r.SourceURL,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC(),
		Items:     make([]core.InquiryItem, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, item.toDomain())
	}
	return out
}

func (r *inquiryItemRecord) toDomain() core.InquiryItem {
	if r == nil {
		return core.InquiryItem{}
	}
	return core.InquiryItem{
		ID:            r.ID,
		InquiryID:     r.InquiryID,
		SKU:           r.SKU,
		Qty:           r.Qty,
		NameSnapshot:  r.NameSnapshot,
		PriceSnapshot: r.PriceSnapshot,
	}
}
