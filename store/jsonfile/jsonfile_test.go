package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-bakery/core"
)

func TestProductStore_MissingFileIsEmpty(t *testing.T) {
	store := NewProductStore(t.TempDir())
	products, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty list, got %d", len(products))
	}
	if _, err := store.GetBySKU(context.Background(), "bread-01"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductStore_LoadsBOMAndCommentedFile(t *testing.T) {
	dir := t.TempDir()
	content := "\ufeff[\n" +
		"  // seasonal\n" +
		"  {\"id\": \"p2\", \"sku\": \"scone-01\", \"slug\": \"scone\", \"name\": \"Scone\", \"price_display\": \"$4.00\"},\n" +
		"  {\"id\": \"p1\", \"sku\": \"bread-01\", \"slug\": \"loaf\", \"name\": \"Artisan Loaf\"},\n" +
		"]\n"
	if err := os.WriteFile(filepath.Join(dir, ProductsFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	products, err := NewProductStore(dir).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	if products[0].Name != "Artisan Loaf" || products[1].PriceDisplay != "$4.00" {
		t.Fatalf("expected name ordering and decoded fields, got %+v", products)
	}
}

func TestProductStore_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProductsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewProductStore(dir).List(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestProductStore_CRUDPersistsAndEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewProductStore(dir)

	loaf, err := store.Create(ctx, core.Product{SKU: "bread-01", Slug: "loaf", Name: "Loaf"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if loaf.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, err := store.Create(ctx, core.Product{SKU: "bread-01", Slug: "other", Name: "Other"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected sku conflict, got %v", err)
	}
	muffin, err := store.Create(ctx, core.Product{SKU: "muffin-01", Slug: "muffin", Name: "Muffin"})
	if err != nil {
		t.Fatalf("create muffin: %v", err)
	}
	muffin.Slug = "loaf"
	if _, err := store.Update(ctx, muffin); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected slug conflict on update, got %v", err)
	}

	reopened := NewProductStore(dir)
	got, err := reopened.GetBySlug(ctx, "loaf")
	if err != nil {
		t.Fatalf("get by slug after reopen: %v", err)
	}
	if got.ID != loaf.ID {
		t.Fatalf("expected persisted product, got %+v", got)
	}

	loaf.Name = "Country Loaf"
	updated, err := reopened.Update(ctx, loaf)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Country Loaf" || !updated.CreatedAt.Equal(loaf.CreatedAt) {
		t.Fatalf("unexpected updated product %+v", updated)
	}
	if _, err := reopened.Update(ctx, core.Product{ID: "missing", SKU: "x", Slug: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := reopened.Delete(ctx, loaf.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := reopened.GetByID(ctx, loaf.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, ProductsFile))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var onDisk []map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if len(onDisk) != 1 || onDisk[0]["sku"] != "muffin-01" {
		t.Fatalf("unexpected file contents %s", raw)
	}
}

func TestProductStore_ConcurrentCreatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sku := string(rune('a'+i)) + "-sku"
			if _, err := store.Create(ctx, core.Product{SKU: sku, Slug: sku, Name: sku}); err != nil {
				t.Errorf("create %s: %v", sku, err)
			}
		}(i)
	}
	wg.Wait()

	products, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("expected 10 products, got %d", len(products))
	}
}

func TestRecipeStore_DraftsAndToggle(t *testing.T) {
	ctx := context.Background()
	store := NewRecipeStore(t.TempDir())

	draft, err := store.Create(ctx, core.Recipe{Slug: "starter", Title: "Starter"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	published, err := store.Create(ctx, core.Recipe{Slug: "scones", Title: "Scones", Published: true})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := store.Create(ctx, core.Recipe{Slug: "scones", Title: "Again"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	public, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 1 || public[0].ID != published.ID {
		t.Fatalf("expected published only, got %+v", public)
	}
	all, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].ID != published.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	if _, err := store.GetBySlug(ctx, "starter", false); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected draft hidden, got %v", err)
	}
	toggled, err := store.TogglePublished(ctx, draft.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Published {
		t.Fatalf("expected toggled recipe published")
	}
	if _, err := store.GetBySlug(ctx, "starter", false); err != nil {
		t.Fatalf("expected toggled recipe public: %v", err)
	}
	if _, err := store.TogglePublished(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found toggling missing recipe, got %v", err)
	}

	if err := store.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, draft.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestStores_ProvidesNoInquiryStore(t *testing.T) {
	stores := NewStores(t.TempDir())
	if stores.ProductStore() == nil || stores.RecipeStore() == nil {
		t.Fatalf("expected product and recipe stores")
	}
	if stores.InquiryStore() != nil {
		t.Fatalf("expected no inquiry store for file backend")
	}
}
