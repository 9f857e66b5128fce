package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/goliatone/go-bakery/core"
	bakerymigrations "github.com/goliatone/go-bakery/migrations"
	sqlstore "github.com/goliatone/go-bakery/store/sql"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "go-bakery-tests"
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	for _, table := range []string{"bakery_products", "bakery_recipes", "bakery_inquiries", "bakery_inquiry_items"} {
		var tableName string
		if err := client.DB().NewRaw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
			table,
		).Scan(context.Background(), &tableName); err != nil {
			t.Fatalf("query sqlite master for %s: %v", table, err)
		}
		if tableName != table {
			t.Fatalf("expected %s table, got %q", table, tableName)
		}
	}
}

func TestProductStore_CRUDAndUniqueness(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	products := factory.ProductStore()

	loaf, err := products.Create(ctx, core.Product{SKU: "bread-01", Slug: "sourdough-loaf", Name: "Sourdough Loaf", PriceDisplay: "$8.00"})
	if err != nil {
		t.Fatalf("create loaf: %v", err)
	}
	if loaf.ID == "" || loaf.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", loaf)
	}
	if _, err := products.Create(ctx, core.Product{SKU: "muffin-01", Slug: "blueberry-muffin", Name: "Blueberry Muffin"}); err != nil {
		t.Fatalf("create muffin: %v", err)
	}

	if _, err := products.Create(ctx, core.Product{SKU: "bread-01", Slug: "other", Name: "Other"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected sku conflict, got %v", err)
	}
	if _, err := products.Create(ctx, core.Product{SKU: "bread-02", Slug: "sourdough-loaf", Name: "Other"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	listed, err := products.List(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Blueberry Muffin" || listed[1].Name != "Sourdough Loaf" {
		t.Fatalf("expected products ordered by name, got %+v", listed)
	}

	bySKU, err := products.GetBySKU(ctx, "bread-01")
	if err != nil || bySKU.ID != loaf.ID {
		t.Fatalf("get by sku: %+v %v", bySKU, err)
	}
	bySlug, err := products.GetBySlug(ctx, "sourdough-loaf")
	if err != nil || bySlug.ID != loaf.ID {
		t.Fatalf("get by slug: %+v %v", bySlug, err)
	}

	loaf.Name = "Country Sourdough"
	loaf.PriceDisplay = "$9.00"
	updated, err := products.Update(ctx, loaf)
	if err != nil {
		t.Fatalf("update loaf: %v", err)
	}
	if updated.Name != "Country Sourdough" || !updated.CreatedAt.Equal(loaf.CreatedAt) {
		t.Fatalf("unexpected updated product %+v", updated)
	}
	loaf.SKU = "muffin-01"
	if _, err := products.Update(ctx, loaf); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected sku conflict on update, got %v", err)
	}

	if err := products.Delete(ctx, loaf.ID); err != nil {
		t.Fatalf("delete loaf: %v", err)
	}
	if _, err := products.GetByID(ctx, loaf.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := products.GetBySlug(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found for missing slug, got %v", err)
	}
	if _, err := products.GetByID(ctx, "not-a-uuid"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
}

func TestRecipeStore_PublishedFilterAndToggle(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	recipes := factory.RecipeStore()

	draft, err := recipes.Create(ctx, core.Recipe{Slug: "rye-starter", Title: "Rye Starter", RecipeHTML: "<p>feed daily</p>"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	published, err := recipes.Create(ctx, core.Recipe{Slug: "scones", Title: "Scones", Published: true})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := recipes.Create(ctx, core.Recipe{Slug: "scones", Title: "More Scones"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	public, err := recipes.List(ctx, false)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 1 || public[0].ID != published.ID {
		t.Fatalf("expected only published recipe, got %+v", public)
	}
	all, err := recipes.List(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].ID != published.ID || all[1].ID != draft.ID {
		t.Fatalf("expected newest first including drafts, got %+v", all)
	}

	if _, err := recipes.GetBySlug(ctx, "rye-starter", false); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected draft hidden from public slug lookup, got %v", err)
	}
	if _, err := recipes.GetBySlug(ctx, "rye-starter", true); err != nil {
		t.Fatalf("expected draft visible to admin lookup: %v", err)
	}

	toggled, err := recipes.TogglePublished(ctx, draft.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Published {
		t.Fatalf("expected toggled recipe to be published")
	}
	if _, err := recipes.GetBySlug(ctx, "rye-starter", false); err != nil {
		t.Fatalf("expected toggled recipe to be public: %v", err)
	}
	public, err = recipes.List(ctx, false)
	if err != nil {
		t.Fatalf("list public after toggle: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("expected both recipes public after toggle, got %+v", public)
	}

	if err := recipes.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := recipes.GetByID(ctx, draft.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestInquiryStore_PersistsItemsInOrder(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	inquiries := factory.InquiryStore()

	created, err := inquiries.Create(ctx, core.Inquiry{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Party order",
		Items: []core.InquiryItem{
			{SKU: "muffin-01", Qty: 12, NameSnapshot: "Blueberry Muffin", PriceSnapshot: "$3.50"},
			{SKU: "bread-01", Qty: 2, NameSnapshot: "Sourdough Loaf", PriceSnapshot: "$8.00"},
		},
	})
	if err != nil {
		t.Fatalf("create inquiry: %v", err)
	}
	if created.Status != core.InquiryStatusNew {
		t.Fatalf("expected default status %q, got %q", core.InquiryStatusNew, created.Status)
	}

	loaded, err := inquiries.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get inquiry: %v", err)
	}
	if len(loaded.Items) != 2 || loaded.Items[0].SKU != "muffin-01" || loaded.Items[1].Qty != 2 {
		t.Fatalf("expected items in submission order, got %+v", loaded.Items)
	}
	for _, item := range loaded.Items {
		if item.InquiryID != created.ID {
			t.Fatalf("expected item linked to inquiry, got %+v", item)
		}
	}

	listed, err := inquiries.List(ctx)
	if err != nil {
		t.Fatalf("list inquiries: %v", err)
	}
	if len(listed) != 1 || len(listed[0].Items) != 2 {
		t.Fatalf("expected one inquiry with items, got %+v", listed)
	}
}

func TestInquiryStore_RollsBackOnInvalidItem(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	inquiries := factory.InquiryStore()

	_, err := inquiries.Create(ctx, core.Inquiry{
		Name:  "Ada",
		Email: "ada@example.com",
		Items: []core.InquiryItem{{SKU: "muffin-01", Qty: 5000, NameSnapshot: "Blueberry Muffin"}},
	})
	if err == nil {
		t.Fatalf("expected qty check constraint to reject item")
	}

	listed, err := inquiries.List(ctx)
	if err != nil {
		t.Fatalf("list inquiries: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected transaction rollback to leave no inquiry, got %d", len(listed))
	}
}

func TestServiceWithSQLStores_EndToEnd(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	svc, err := core.NewService(core.Config{Cart: core.CartConfig{Secret: "integration-secret"}},
		core.WithRepositoryFactory(factory),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, core.ProductInput{SKU: "scone-01", Name: "Cream Scone", PriceDisplay: "$4.00"}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	mutation, err := svc.AddToCart(ctx, "", "scone-01", 3)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	receipt, err := svc.SubmitInquiry(ctx, mutation.Token, core.InquiryForm{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("submit inquiry: %v", err)
	}
	stored, err := factory.InquiryStore().Get(ctx, receipt.InquiryID)
	if err != nil {
		t.Fatalf("get stored inquiry: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].NameSnapshot != "Cream Scone" || stored.Items[0].PriceSnapshot != "$4.00" {
		t.Fatalf("unexpected stored items %+v", stored.Items)
	}
}

func TestServiceWithCachedProducts_CartReadsUncachedCatalog(t *testing.T) {
	ctx := context.Background()
	cacheConfig := repositorycache.DefaultConfig()
	cacheConfig.TTL = time.Minute
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	factory := newFactory(t, sqlstore.WithProductCache(cacheService))
	if _, ok := factory.ProductStore().(*sqlstore.CachedProductStore); !ok {
		t.Fatalf("expected cached product store, got %T", factory.ProductStore())
	}

	svc, err := core.NewService(core.Config{Cart: core.CartConfig{Secret: "integration-secret"}},
		core.WithRepositoryFactory(factory),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	bagel, err := svc.CreateProduct(ctx, core.ProductInput{SKU: "bagel-01", Name: "Sesame Bagel", PriceDisplay: "$2.50"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	mutation, err := svc.AddToCart(ctx, "", "bagel-01", 2)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("prime cached list: %v", err)
	}

	if err := factory.CatalogStore().Delete(ctx, bagel.ID); err != nil {
		t.Fatalf("delete behind cache: %v", err)
	}

	listed, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected stale cached listing, got %d products", len(listed))
	}
	if _, err := svc.AddToCart(ctx, "", "bagel-01", 1); err == nil {
		t.Fatalf("expected cart to reject sku deleted behind the cache")
	}
	view, err := svc.LoadCart(ctx, mutation.Token)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("expected deleted line to be dropped, got %+v", view.Cart.Items)
	}
}

func newFactory(t *testing.T, opts ...sqlstore.FactoryOption) *sqlstore.RepositoryFactory {
	t.Helper()
	client, cleanup := newSQLiteClient(t)
	t.Cleanup(cleanup)
	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client, opts...)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	return factory
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:bakery-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	ctx := context.Background()
	_, err = bakerymigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != bakerymigrations.DialectSQLite {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, bakerymigrations.WithValidationTargets(bakerymigrations.DialectSQLite))
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}
