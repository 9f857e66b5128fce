package core

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-bakery/cart"
	glog "github.com/goliatone/go-logger/glog"
)

var ErrProductStoreRequired = errors.New("core: product store is required")

type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	repositoryFactory any
	codec             *cart.Codec
	productStore      ProductStore
	catalogStore      ProductStore
	recipeStore       RecipeStore
	inquiryStore      InquiryStore
	notifier          Notifier
	enqueuer          NotificationEnqueuer
}

type ServiceDependencies struct {
	Logger               Logger
	LoggerProvider       LoggerProvider
	MetricsRecorder      MetricsRecorder
	ErrorMapper          ErrorMapper
	ConfigProvider       ConfigProvider
	OptionsResolver      OptionsResolver
	RepositoryFactory    any
	Codec                *cart.Codec
	ProductStore         ProductStore
	CatalogStore         ProductStore
	RecipeStore          RecipeStore
	InquiryStore         InquiryStore
	Notifier             Notifier
	NotificationEnqueuer NotificationEnqueuer
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("bakery", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("bakery"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.codec == nil {
		codec, codecErr := cart.NewCodecFromString(finalConfig.Cart.Secret)
		if codecErr != nil {
			return nil, mapBuildError(builder.errorMapper, codecErr)
		}
		builder.codec = codec
	}

	if stores, ok := builder.repositoryFactory.(StoreProvider); ok && stores != nil {
		if builder.productStore == nil {
			builder.productStore = stores.ProductStore()
		}
		if builder.recipeStore == nil {
			builder.recipeStore = stores.RecipeStore()
		}
		if builder.inquiryStore == nil {
			builder.inquiryStore = stores.InquiryStore()
		}
	}
	if builder.productStore == nil {
		return nil, mapBuildError(builder.errorMapper, ErrProductStoreRequired)
	}
	if builder.catalogStore == nil {
		if catalogs, ok := builder.repositoryFactory.(CatalogProvider); ok && catalogs != nil {
			builder.catalogStore = catalogs.CatalogStore()
		}
	}
	if builder.catalogStore == nil {
		builder.catalogStore = builder.productStore
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorMapper:       builder.errorMapper,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		repositoryFactory: builder.repositoryFactory,
		codec:             builder.codec,
		productStore:      builder.productStore,
		catalogStore:      builder.catalogStore,
		recipeStore:       builder.recipeStore,
		inquiryStore:      builder.inquiryStore,
		notifier:          builder.notifier,
		enqueuer:          builder.enqueuer,
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

// Codec exposes the cart codec so transports can build a cookie store
// sharing the same secret.
func (s *Service) Codec() *cart.Codec {
	if s == nil {
		return nil
	}
	return s.codec
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:               s.logger,
		LoggerProvider:       s.loggerProvider,
		MetricsRecorder:      s.metricsRecorder,
		ErrorMapper:          s.errorMapper,
		ConfigProvider:       s.configProvider,
		OptionsResolver:      s.optionsResolver,
		RepositoryFactory:    s.repositoryFactory,
		Codec:                s.codec,
		ProductStore:         s.productStore,
		CatalogStore:         s.catalogStore,
		RecipeStore:          s.recipeStore,
		InquiryStore:         s.inquiryStore,
		Notifier:             s.notifier,
		NotificationEnqueuer: s.enqueuer,
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
