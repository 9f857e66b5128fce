package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	bakery "github.com/goliatone/go-bakery"
	"github.com/goliatone/go-bakery/adapters/gocommand"
	"github.com/goliatone/go-bakery/adapters/gojob"
	"github.com/goliatone/go-bakery/adapters/gologger"
	"github.com/goliatone/go-bakery/cart"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	bakerymigrations "github.com/goliatone/go-bakery/migrations"
	"github.com/goliatone/go-bakery/notify"
	"github.com/goliatone/go-bakery/store/jsonfile"
	sqlstore "github.com/goliatone/go-bakery/store/sql"
	httptransport "github.com/goliatone/go-bakery/transport/http"
	sqlqueue "github.com/goliatone/go-job/queue/adapters/postgres"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	"github.com/goliatone/go-job/queue/worker"
	glog "github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const productCacheTTL = 30 * time.Second

type app struct {
	config  core.Config
	logger  glog.Logger
	service *core.Service
	handler http.Handler
	client  *persistence.Client
	worker  *worker.Worker
	closers []func()
}

func loadConfig(ctx context.Context) (core.Config, error) {
	return core.ResolveConfig(ctx, core.Config{}, core.NewCfgxConfigProvider(core.NewEnvConfigLoader()))
}

// buildApp wires stores, notifications and the HTTP handler from cfg. The
// SQL stores are used when a database is configured, JSON files otherwise.
func buildApp(ctx context.Context, cfg core.Config, root *gologger.SlogLogger) (*app, error) {
	provider := gologger.NewSlogProvider(root)
	a := &app{config: cfg, logger: provider.GetLogger("bakery")}

	var factory core.StoreProvider
	if cfg.DatabaseConfigured() {
		client, err := openPersistence(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.client = client
		a.closers = append(a.closers, func() { _ = client.Close() })

		cacheConfig := repositorycache.DefaultConfig()
		cacheConfig.TTL = productCacheTTL
		cacheService, err := repositorycache.NewCacheService(cacheConfig)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("bakery: product cache: %w", err)
		}
		sqlFactory, err := sqlstore.NewRepositoryFactoryFromPersistence(client, sqlstore.WithProductCache(cacheService))
		if err != nil {
			a.Close()
			return nil, err
		}
		factory = sqlFactory
		a.logger.Info("using database stores", "driver", cfg.DatabaseDriver())
	} else {
		factory = jsonfile.NewStores(cfg.Data.Dir)
		a.logger.Warn("DATABASE_URL not set, using JSON file stores without inquiries", "dir", cfg.Data.Dir)
	}

	notifier := notify.NewNotifier(cfg.Email)
	opts := []core.Option{
		core.WithLoggerProvider(provider),
		core.WithRepositoryFactory(factory),
	}

	// Queued delivery needs the inquiry store, so it only runs on a database.
	var (
		jobs  *jobqueuecommand.Registry
		queue *sqlqueue.Adapter
	)
	if cfg.EmailConfigured() && a.client != nil {
		adapter, storage, err := gojob.NewSQLQueue(a.client.DB().DB, cfg.DatabaseDriver())
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("bakery: job queue tables: %w", err)
		}
		jobs = jobqueuecommand.NewRegistry()
		queue = adapter
		opts = append(opts, core.WithNotificationEnqueuer(gojob.NewNotificationEnqueuer(queue, jobs)))
	} else {
		opts = append(opts, core.WithNotifier(notifier))
	}

	svc, err := core.NewService(cfg, opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.service = svc
	final := svc.Config()

	if queue != nil {
		if err := gojob.RegisterJobs(jobs, bakerycommand.NewNotifyInquiryCommand(svc, notifier)); err != nil {
			a.Close()
			return nil, err
		}
		a.worker, err = gojob.NewNotificationWorker(queue, jobs, gojob.WorkerConfig{
			Logger: provider.GetLogger("notifications"),
		})
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	facade, err := bakery.NewFacade(svc)
	if err != nil {
		a.Close()
		return nil, err
	}
	registry := gocommand.NewRegistryAdapter(nil)
	subs, err := facade.Register(registry)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, subs.Unsubscribe)
	if err := registry.Initialize(); err != nil {
		a.Close()
		return nil, err
	}

	cookies, err := cart.NewCookieStore(svc.Codec(),
		cart.WithCookieName(final.Cart.CookieName),
		cart.WithCookieMaxAge(final.Cart.MaxAge),
		cart.WithSecureCookie(final.Cart.Secure),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	handler, err := httptransport.NewHandler(facade, cookies,
		httptransport.WithLogger(provider.GetLogger("http")),
		httptransport.WithAdminCredentials(final.Admin.User, final.Admin.Pass),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler = handler.Routes()
	return a, nil
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

type persistenceConfig struct {
	driver string
	server string
	debug  bool
}

func (c persistenceConfig) GetDebug() bool                { return c.debug }
func (c persistenceConfig) GetDriver() string             { return c.driver }
func (c persistenceConfig) GetServer() string             { return c.server }
func (c persistenceConfig) GetPingTimeout() time.Duration { return 5 * time.Second }
func (c persistenceConfig) GetOtelIdentifier() string     { return "go-bakery" }

// openPersistence connects to the configured database and registers the
// embedded migrations for its dialect. Migrations are not applied here.
func openPersistence(ctx context.Context, cfg core.Config) (*persistence.Client, error) {
	driver := cfg.DatabaseDriver()
	var (
		dialect       schema.Dialect
		targetDialect string
	)
	switch driver {
	case "postgres":
		dialect = pgdialect.New()
		targetDialect = bakerymigrations.DialectPostgres
	case "sqlite3":
		dialect = sqlitedialect.New()
		targetDialect = bakerymigrations.DialectSQLite
	default:
		return nil, fmt.Errorf("bakery: unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("bakery: open database: %w", err)
	}
	if driver == "sqlite3" {
		sqlDB.SetMaxOpenConns(1)
	}
	client, err := persistence.New(persistenceConfig{
		driver: driver,
		server: cfg.Database.URL,
		debug:  cfg.Database.Debug,
	}, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bakery: persistence client: %w", err)
	}

	if _, err := bakerymigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != targetDialect {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, bakerymigrations.WithValidationTargets(targetDialect)); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
