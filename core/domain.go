package core

import (
	"time"

	"github.com/goliatone/go-bakery/cart"
)

const InquiryStatusNew = "New"

const (
	NotificationStatusSent    = "sent"
	NotificationStatusSkipped = "skipped"
	NotificationStatusQueued  = "queued"
	NotificationStatusFailed  = "failed"
)

type Product struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	PriceDisplay string    `json:"price_display"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductInput struct {
	SKU          string `json:"sku"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	PriceDisplay string `json:"price_display"`
}

type Recipe struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	RecipeHTML string    `json:"recipe_html"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RecipeInput struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"image_url"`
	RecipeHTML string `json:"recipe_html"`
	Published  bool   `json:"published"`
}

type Inquiry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Company   string        `json:"company,omitempty"`
	Message   string        `json:"message,omitempty"`
	SourceURL string        `json:"source_url,omitempty"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []InquiryItem `json:"items"`
}

// InquiryItem freezes the product name and price at submission time.
type InquiryItem struct {
	ID            string `json:"id"`
	InquiryID     string `json:"inquiry_id"`
	SKU           string `json:"sku"`
	Qty           int    `json:"qty"`
	NameSnapshot  string `json:"name_snapshot"`
	PriceSnapshot string `json:"price_snapshot,omitempty"`
}

// InquiryForm is the checkout form. Website is the honeypot field.
type InquiryForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	Website   string `json:"website"`
	SourceURL string `json:"source_url"`
}

type NotificationResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// InquiryReceipt is returned by a successful checkout. ClearCart tells the
// transport to drop the cart token.
type InquiryReceipt struct {
	InquiryID    string             `json:"inquiry_id"`
	ClearCart    bool               `json:"clear_cart"`
	Notification NotificationResult `json:"notification"`
}

type CartLine struct {
	SKU          string `json:"sku"`
	Qty          int    `json:"qty"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url,omitempty"`
	PriceDisplay string `json:"price_display,omitempty"`
}

type CartView struct {
	Cart  cart.Cart  `json:"cart"`
	Count int        `json:"count"`
	Lines []CartLine `json:"lines"`
}

type CartMutation struct {
	Cart  cart.Cart `json:"cart"`
	Token string    `json:"-"`
	Count int       `json:"count"`
}
