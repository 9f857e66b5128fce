package bakery

import (
	"context"
	"io/fs"
	"testing"

	"github.com/goliatone/go-bakery/adapters/gocommand"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	bakeryquery "github.com/goliatone/go-bakery/query"
	"github.com/goliatone/go-bakery/store/jsonfile"
	gocmd "github.com/goliatone/go-command"
)

func newFacadeService(t *testing.T) *core.Service {
	t.Helper()
	svc, err := NewService(
		Config{Cart: core.CartConfig{Secret: "facade-secret"}},
		WithRepositoryFactory(jsonfile.NewStores(t.TempDir())),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewFacade_WiresCommandsAndQueries(t *testing.T) {
	facade, err := NewFacade(newFacadeService(t))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	commands := facade.Commands()
	if commands.AddCartItem == nil || commands.SubmitInquiry == nil || commands.ToggleRecipePublished == nil {
		t.Fatalf("expected command handlers to be wired")
	}
	queries := facade.Queries()
	if queries.LoadCart == nil || queries.GetProduct == nil || queries.GetInquiry == nil {
		t.Fatalf("expected query handlers to be wired")
	}
	if facade.Service() == nil {
		t.Fatalf("expected service to be exposed")
	}
}

func TestFacade_CommandAndQueryDelegation(t *testing.T) {
	facade, err := NewFacade(newFacadeService(t))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	ctx := context.Background()

	created := gocmd.NewResult[core.Product]()
	if err := facade.Commands().CreateProduct.Execute(gocmd.ContextWithResult(ctx, created), bakerycommand.CreateProductMessage{
		Input: core.ProductInput{SKU: "scone-01", Name: "Cherry Scone", PriceDisplay: "$4.00"},
	}); err != nil {
		t.Fatalf("execute create product: %v", err)
	}
	product, ok := created.Load()
	if !ok || product.Slug != "cherry-scone" {
		t.Fatalf("unexpected created product %#v", product)
	}

	mutation := gocmd.NewResult[core.CartMutation]()
	if err := facade.Commands().AddCartItem.Execute(gocmd.ContextWithResult(ctx, mutation), bakerycommand.AddCartItemMessage{
		SKU: "scone-01",
		Qty: 2,
	}); err != nil {
		t.Fatalf("execute add cart item: %v", err)
	}
	added, ok := mutation.Load()
	if !ok || added.Token == "" || added.Count != 2 {
		t.Fatalf("unexpected cart mutation %#v", added)
	}

	view, err := facade.Queries().LoadCart.Query(ctx, bakeryquery.LoadCartMessage{Token: added.Token})
	if err != nil {
		t.Fatalf("query load cart: %v", err)
	}
	if view.Count != 2 || len(view.Lines) != 1 || view.Lines[0].Name != "Cherry Scone" {
		t.Fatalf("unexpected cart view %#v", view)
	}

	found, err := facade.Queries().GetProduct.Query(ctx, bakeryquery.GetProductMessage{SKU: "scone-01"})
	if err != nil {
		t.Fatalf("query get product: %v", err)
	}
	if found.ID != product.ID {
		t.Fatalf("expected product %q, got %q", product.ID, found.ID)
	}
}

func TestFacade_RegisterSubscribesDispatcher(t *testing.T) {
	facade, err := NewFacade(newFacadeService(t))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	subs, err := facade.Register(gocommand.NewRegistryAdapter(nil))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer subs.Unsubscribe()
	if subs.Len() != 18 {
		t.Fatalf("expected 18 subscriptions, got %d", subs.Len())
	}

	ctx := context.Background()
	if err := gocommand.Dispatch(ctx, bakerycommand.CreateProductMessage{
		Input: core.ProductInput{SKU: "rye-01", Name: "Rye Loaf"},
	}); err != nil {
		t.Fatalf("dispatch create product: %v", err)
	}

	products, err := gocommand.Query[bakeryquery.ListProductsMessage, []core.Product](ctx, bakeryquery.ListProductsMessage{})
	if err != nil {
		t.Fatalf("query list products: %v", err)
	}
	if len(products) != 1 || products[0].SKU != "rye-01" {
		t.Fatalf("unexpected products %#v", products)
	}
}

func TestNewFacade_RequiresService(t *testing.T) {
	facade, err := NewFacade(nil)
	if err == nil {
		t.Fatalf("expected nil service error")
	}
	if facade != nil {
		t.Fatalf("expected nil facade on error")
	}
}

func TestGetMigrationsFS_EmbedsBothDialects(t *testing.T) {
	fsys := GetMigrationsFS()
	for _, dir := range []string{"data/sql/migrations", "data/sql/migrations/sqlite"} {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		if len(entries) == 0 {
			t.Fatalf("expected migrations in %s", dir)
		}
	}
}
