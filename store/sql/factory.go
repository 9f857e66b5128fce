package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-bakery/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db    *bun.DB
	cache repositorycache.CacheService

	productStore core.ProductStore
	catalogStore *ProductStore
	recipeStore  *RecipeStore
	inquiryStore *InquiryStore
}

type FactoryOption func(*RepositoryFactory)

// WithProductCache routes product reads through the given cache service.
func WithProductCache(cacheService repositorycache.CacheService) FactoryOption {
	return func(f *RepositoryFactory) {
		f.cache = cacheService
	}
}

func NewRepositoryFactory(opts ...FactoryOption) *RepositoryFactory {
	factory := &RepositoryFactory{}
	for _, opt := range opts {
		if opt != nil {
			opt(factory)
		}
	}
	return factory
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.productStore != nil && f.recipeStore != nil && f.inquiryStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) ProductStore() core.ProductStore {
	if f == nil || f.productStore == nil {
		return nil
	}
	return f.productStore
}

// CatalogStore returns the uncached product store. Cart operations read it so
// a product removed elsewhere stops being purchasable at once.
func (f *RepositoryFactory) CatalogStore() core.ProductStore {
	if f == nil || f.catalogStore == nil {
		return nil
	}
	return f.catalogStore
}

func (f *RepositoryFactory) RecipeStore() core.RecipeStore {
	if f == nil || f.recipeStore == nil {
		return nil
	}
	return f.recipeStore
}

func (f *RepositoryFactory) InquiryStore() core.InquiryStore {
	if f == nil || f.inquiryStore == nil {
		return nil
	}
	return f.inquiryStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	productStore, err := NewProductStore(f.db)
	if err != nil {
		return err
	}
	f.productStore = productStore
	f.catalogStore = productStore
	if f.cache != nil {
		cached, err := NewCachedProductStore(productStore, f.cache)
		if err != nil {
			return err
		}
		f.productStore = cached
	}
	recipeStore, err := NewRecipeStore(f.db)
	if err != nil {
		return err
	}
	f.recipeStore = recipeStore
	inquiryStore, err := NewInquiryStore(f.db)
	if err != nil {
		return err
	}
	f.inquiryStore = inquiryStore
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
