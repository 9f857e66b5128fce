package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-bakery/adapters/gojob"
	"github.com/goliatone/go-bakery/adapters/gologger"
	"github.com/goliatone/go-bakery/core"
)

func testConfig(t *testing.T) core.Config {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Cart.Secret = "cmd-test-secret"
	cfg.Data.Dir = t.TempDir()
	cfg.Admin.User = "staff"
	cfg.Admin.Pass = "s3cret"
	return cfg
}

func quietLogger() *gologger.SlogLogger {
	return gologger.NewSlogLogger(io.Discard, gologger.ParseLevel("error"))
}

func TestBuildAppUsesJSONStoresWithoutDatabase(t *testing.T) {
	a, err := buildApp(context.Background(), testConfig(t), quietLogger())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	if a.client != nil {
		t.Fatalf("expected no persistence client without DATABASE_URL")
	}
	if a.worker != nil {
		t.Fatalf("expected no notification worker without email config")
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}
}

func sqliteConfig(t *testing.T) core.Config {
	t.Helper()
	cfg := testConfig(t)
	cfg.Database.URL = fmt.Sprintf("file:bakery-cmd-%d?mode=memory&cache=shared", time.Now().UnixNano())
	cfg.Database.Driver = "sqlite3"
	return cfg
}

func buildMigratedApp(t *testing.T, cfg core.Config) *app {
	t.Helper()
	ctx := context.Background()
	a, err := buildApp(ctx, cfg, quietLogger())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(a.Close)
	if a.client == nil {
		t.Fatalf("expected persistence client")
	}
	if err := a.client.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return a
}

// checkoutRyeLoaf adds two loaves to a fresh cart and submits it.
func checkoutRyeLoaf(t *testing.T, a *app) {
	t.Helper()
	product, err := a.service.CreateProduct(context.Background(), core.ProductInput{
		Name:         "Rye Loaf",
		SKU:          "rye-01",
		PriceDisplay: "$8.00",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	form := url.Values{"sku": {product.SKU}, "qty": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 from add, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected cart cookie")
	}

	checkout := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"For Friday"}}
	req = httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkout.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from checkout, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBuildAppSQLiteCheckoutFlow(t *testing.T) {
	a := buildMigratedApp(t, sqliteConfig(t))
	if a.worker != nil {
		t.Fatalf("expected no notification worker without email config")
	}

	checkoutRyeLoaf(t, a)

	inquiries, err := a.service.ListInquiries(context.Background())
	if err != nil {
		t.Fatalf("list inquiries: %v", err)
	}
	if len(inquiries) != 1 || len(inquiries[0].Items) != 1 || inquiries[0].Items[0].Qty != 2 {
		t.Fatalf("unexpected stored inquiries: %#v", inquiries)
	}
}

func TestBuildAppQueuesNotificationsWithEmail(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Email.Host = "smtp.invalid"
	cfg.Email.Port = 2525
	cfg.Email.From = "shop@example.com"
	cfg.Email.To = "orders@example.com"

	a := buildMigratedApp(t, cfg)
	if a.worker == nil {
		t.Fatalf("expected notification worker with email and database config")
	}
	if len(a.worker.RegisteredTasks()) != 1 {
		t.Fatalf("expected the notify task to be registered, got %d", len(a.worker.RegisteredTasks()))
	}

	checkoutRyeLoaf(t, a)

	var queued int
	if err := a.client.DB().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+gojob.QueueTable).Scan(&queued); err != nil {
		t.Fatalf("count queued jobs: %v", err)
	}
	if queued != 1 {
		t.Fatalf("expected one queued notification, got %d", queued)
	}
}

func TestOpenPersistenceRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.URL = "mysql://localhost/bakery"
	cfg.Database.Driver = "mysql"
	if _, err := openPersistence(context.Background(), cfg); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestPersistenceConfigAccessors(t *testing.T) {
	cfg := persistenceConfig{driver: "postgres", server: "postgres://db", debug: true}
	if cfg.GetDriver() != "postgres" || cfg.GetServer() != "postgres://db" || !cfg.GetDebug() {
		t.Fatalf("unexpected accessors: %#v", cfg)
	}
	if cfg.GetPingTimeout() <= 0 {
		t.Fatalf("expected positive ping timeout")
	}
}
