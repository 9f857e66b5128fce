package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetBySKU(ctx context.Context, sku string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

type RecipeStore interface {
	List(ctx context.Context, includeDrafts bool) ([]Recipe, error)
	GetByID(ctx context.Context, id string) (Recipe, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (Recipe, error)
	Create(ctx context.Context, recipe Recipe) (Recipe, error)
	Update(ctx context.Context, recipe Recipe) (Recipe, error)
	TogglePublished(ctx context.Context, id string) (Recipe, error)
	Delete(ctx context.Context, id string) error
}

// InquiryStore persists an inquiry together with its item snapshots
// atomically.
type InquiryStore interface {
	Create(ctx context.Context, inquiry Inquiry) (Inquiry, error)
	Get(ctx context.Context, id string) (Inquiry, error)
	List(ctx context.Context) ([]Inquiry, error)
}

type Notifier interface {
	NotifyInquiry(ctx context.Context, inquiry Inquiry) (NotificationResult, error)
}

type NotificationEnqueuer interface {
	EnqueueInquiryNotification(ctx context.Context, inquiryID string) error
}

type StoreProvider interface {
	ProductStore() ProductStore
	RecipeStore() RecipeStore
	InquiryStore() InquiryStore
}

// CatalogProvider is implemented by factories whose ProductStore caches.
// CatalogStore reads products straight from storage for cart checks.
type CatalogProvider interface {
	CatalogStore() ProductStore
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
