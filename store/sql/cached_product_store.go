package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-bakery/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const productCacheKeyPrefix = "go-bakery::products::v1"

// CachedProductStore serves catalog reads through a read-through cache and
// drops the affected keys on every write.
type CachedProductStore struct {
	base  core.ProductStore
	cache repositorycache.CacheService
}

func NewCachedProductStore(
	base core.ProductStore,
	cacheService repositorycache.CacheService,
) (*CachedProductStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base product store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: product cache service is required")
	}
	return &CachedProductStore{base: base, cache: cacheService}, nil
}

// ProductListCacheKey is the cache key holding the full catalog listing.
func ProductListCacheKey() string {
	return productCacheKeyPrefix + "::list"
}

// ProductSlugCacheKey returns go-bakery::products::v1::slug::<slug> with the
// slug trimmed, lowercased and URL-path escaped.
func ProductSlugCacheKey(slug string) string {
	return productCacheKeyPrefix + "::slug::" + url.PathEscape(strings.ToLower(strings.TrimSpace(slug)))
}

func (s *CachedProductStore) List(ctx context.Context) ([]core.Product, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	products, err := repositorycache.GetOrFetch(ctx, s.cache, ProductListCacheKey(), func(ctx context.Context) ([]core.Product, error) {
		return s.base.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]core.Product(nil), products...), nil
}

func (s *CachedProductStore) GetByID(ctx context.Context, id string) (core.Product, error) {
	if s == nil || s.base == nil {
		return core.Product{}, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	return s.base.GetByID(ctx, id)
}

func (s *CachedProductStore) GetBySlug(ctx context.Context, slug string) (core.Product, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Product{}, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	return repositorycache.GetOrFetch(ctx, s.cache, ProductSlugCacheKey(slug), func(ctx context.Context) (core.Product, error) {
		return s.base.GetBySlug(ctx, slug)
	})
}

func (s *CachedProductStore) GetBySKU(ctx context.Context, sku string) (core.Product, error) {
	if s == nil || s.base == nil {
		return core.Product{}, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	return s.base.GetBySKU(ctx, sku)
}

func (s *CachedProductStore) Create(ctx context.Context, product core.Product) (core.Product, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Product{}, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	created, err := s.base.Create(ctx, product)
	if err != nil {
		return core.Product{}, err
	}
	if err := s.invalidate(ctx, created.Slug); err != nil {
		return core.Product{}, err
	}
	return created, nil
}

func (s *CachedProductStore) Update(ctx context.Context, product core.Product) (core.Product, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Product{}, fmt.Errorf("sqlstore: cached product store is not configured")
	}
	previous, err := s.base.GetByID(ctx, product.ID)
	if err != nil {
		return core.Product{}, err
	}
	updated, err := s.base.Update(ctx, product)
	if err != nil {
		return core.Product{}, err
	}
	if err := s.invalidate(ctx, previous.Slug, updated.Slug); err != nil {
		return core.Product{}, err
	}
	return updated, nil
}

func (s *CachedProductStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached product store is not configured")
	}
	var slugs []string
	if previous, err := s.base.GetByID(ctx, id); err == nil {
		slugs = append(slugs, previous.Slug)
	}
	if err := s.base.Delete(ctx, id); err != nil {
		return err
	}
	return s.invalidate(ctx, slugs...)
}

func (s *CachedProductStore) invalidate(ctx context.Context, slugs ...string) error {
	if err := s.cache.Delete(ctx, ProductListCacheKey()); err != nil {
		return err
	}
	for _, slug := range slugs {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		if err := s.cache.Delete(ctx, ProductSlugCacheKey(slug)); err != nil {
			return err
		}
	}
	return nil
}
