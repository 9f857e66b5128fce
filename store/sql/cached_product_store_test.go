package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-bakery/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type stubProductStore struct {
	mu        sync.Mutex
	products  map[string]core.Product
	listCalls int
	slugCalls int
	listErr   error
}

func newStubProductStore(products ...core.Product) *stubProductStore {
	store := &stubProductStore{products: map[string]core.Product{}}
	for _, product := range products {
		store.products[product.ID] = product
	}
	return store
}

func (s *stubProductStore) List(context.Context) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]core.Product, 0, len(s.products))
	for _, product := range s.products {
		out = append(out, product)
	}
	return out, nil
}

func (s *stubProductStore) GetByID(_ context.Context, id string) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return core.Product{}, core.ErrNotFound
	}
	return product, nil
}

func (s *stubProductStore) GetBySlug(_ context.Context, slug string) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slugCalls++
	for _, product := range s.products {
		if product.Slug == slug {
			return product, nil
		}
	}
	return core.Product{}, core.ErrNotFound
}

func (s *stubProductStore) GetBySKU(_ context.Context, sku string) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range s.products {
		if product.SKU == sku {
			return product, nil
		}
	}
	return core.Product{}, core.ErrNotFound
}

func (s *stubProductStore) Create(_ context.Context, product core.Product) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = product.SKU
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductStore) Update(_ context.Context, product core.Product) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return core.Product{}, core.ErrNotFound
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func TestCachedProductStore_List_MissFetchThenHit(t *testing.T) {
	base := newStubProductStore(core.Product{ID: "p1", SKU: "bread-01", Slug: "loaf", Name: "Loaf"})
	store, err := NewCachedProductStore(base, newTestProductCacheService(t))
	if err != nil {
		t.Fatalf("new cached product store: %v", err)
	}

	for i := 0; i < 2; i++ {
		products, err := store.List(context.Background())
		if err != nil {
			t.Fatalf("list #%d: %v", i, err)
		}
		if len(products) != 1 {
			t.Fatalf("expected one product, got %d", len(products))
		}
	}
	if base.listCalls != 1 {
		t.Fatalf("expected second list to be a cache hit, base list calls=%d", base.listCalls)
	}
}

func TestCachedProductStore_WritesInvalidateListAndSlug(t *testing.T) {
	ctx := context.Background()
	base := newStubProductStore(core.Product{ID: "p1", SKU: "bread-01", Slug: "loaf", Name: "Loaf"})
	store, err := NewCachedProductStore(base, newTestProductCacheService(t))
	if err != nil {
		t.Fatalf("new cached product store: %v", err)
	}

	if _, err := store.List(ctx); err != nil {
		t.Fatalf("prime list: %v", err)
	}
	if _, err := store.GetBySlug(ctx, "loaf"); err != nil {
		t.Fatalf("prime slug: %v", err)
	}

	if _, err := store.Update(ctx, core.Product{ID: "p1", SKU: "bread-01", Slug: "country-loaf", Name: "Country Loaf"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := store.GetBySlug(ctx, "loaf"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected old slug entry to be dropped, got %v", err)
	}
	products, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if base.listCalls != 2 || products[0].Name != "Country Loaf" {
		t.Fatalf("expected refreshed list, calls=%d products=%+v", base.listCalls, products)
	}

	if _, err := store.Create(ctx, core.Product{SKU: "muffin-01", Slug: "muffin", Name: "Muffin"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	products, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(products) != 2 || base.listCalls != 3 {
		t.Fatalf("expected create to invalidate list, calls=%d len=%d", base.listCalls, len(products))
	}

	if err := store.Delete(ctx, "muffin-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	products, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected delete to invalidate list, got %d products", len(products))
	}
}

func TestCachedProductStore_PropagatesBaseErrors(t *testing.T) {
	base := newStubProductStore()
	errDown := errors.New("db down")
	base.listErr = errDown
	store, err := NewCachedProductStore(base, newTestProductCacheService(t))
	if err != nil {
		t.Fatalf("new cached product store: %v", err)
	}
	if _, err := store.List(context.Background()); !errors.Is(err, errDown) {
		t.Fatalf("expected base error propagation, got %v", err)
	}
}

func TestCatalogStore_CartSeesDeleteBehindCache(t *testing.T) {
	ctx := context.Background()
	base := newStubProductStore(core.Product{ID: "bread-01", SKU: "bread-01", Slug: "loaf", Name: "Loaf"})
	cached, err := NewCachedProductStore(base, newTestProductCacheService(t))
	if err != nil {
		t.Fatalf("new cached product store: %v", err)
	}
	svc, err := core.NewService(core.Config{Cart: core.CartConfig{Secret: "catalog-secret"}},
		core.WithProductStore(cached),
		core.WithCatalogStore(base),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("prime list: %v", err)
	}
	if err := base.Delete(ctx, "bread-01"); err != nil {
		t.Fatalf("delete behind cache: %v", err)
	}

	listed, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected cached listing to still hold the product, got %d", len(listed))
	}
	if _, err := svc.AddToCart(ctx, "", "bread-01", 1); err == nil {
		t.Fatalf("expected deleted sku to be rejected by the cart")
	}
}

func TestProductSlugCacheKey_Contract(t *testing.T) {
	const expected = "go-bakery::products::v1::slug::rye%2Fspelt%20loaf"
	if key := ProductSlugCacheKey(" Rye/Spelt Loaf "); key != expected {
		t.Fatalf("unexpected cache key: got %q want %q", key, expected)
	}
}

func TestNewCachedProductStore_RequiresDependencies(t *testing.T) {
	if _, err := NewCachedProductStore(nil, newTestProductCacheService(t)); err == nil {
		t.Fatalf("expected error for nil base store")
	}
	if _, err := NewCachedProductStore(newStubProductStore(), nil); err == nil {
		t.Fatalf("expected error for nil cache service")
	}
}

func newTestProductCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}
