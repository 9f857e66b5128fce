package bakery

import "github.com/goliatone/go-bakery/core"

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type ProductStore = core.ProductStore
type RecipeStore = core.RecipeStore
type InquiryStore = core.InquiryStore
type Notifier = core.Notifier
type NotificationEnqueuer = core.NotificationEnqueuer

type Product = core.Product
type ProductInput = core.ProductInput
type Recipe = core.Recipe
type RecipeInput = core.RecipeInput
type Inquiry = core.Inquiry
type InquiryForm = core.InquiryForm
type InquiryReceipt = core.InquiryReceipt

var (
	WithLogger               = core.WithLogger
	WithLoggerProvider       = core.WithLoggerProvider
	WithMetricsRecorder      = core.WithMetricsRecorder
	WithErrorMapper          = core.WithErrorMapper
	WithConfigProvider       = core.WithConfigProvider
	WithOptionsResolver      = core.WithOptionsResolver
	WithCartCodec            = core.WithCartCodec
	WithRepositoryFactory    = core.WithRepositoryFactory
	WithProductStore         = core.WithProductStore
	WithRecipeStore          = core.WithRecipeStore
	WithInquiryStore         = core.WithInquiryStore
	WithNotifier             = core.WithNotifier
	WithNotificationEnqueuer = core.WithNotificationEnqueuer
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}
