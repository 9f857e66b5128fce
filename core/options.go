package core

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/cart"
	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder struct {
	runtimeConfig     Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	codec             *cart.Codec
	repositoryFactory any
	productStore      ProductStore
	catalogStore      ProductStore
	recipeStore       RecipeStore
	inquiryStore      InquiryStore
	notifier          Notifier
	enqueuer          NotificationEnqueuer
}

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

// WithCartCodec overrides the codec built from Config.Cart.Secret.
func WithCartCodec(codec *cart.Codec) Option {
	return func(b *serviceBuilder) {
		b.codec = codec
	}
}

// WithRepositoryFactory supplies stores not set explicitly. The factory may
// expose any of ProductStore(), RecipeStore() and InquiryStore().
func WithRepositoryFactory(factory any) Option {
	return func(b *serviceBuilder) {
		b.repositoryFactory = factory
	}
}

func WithProductStore(store ProductStore) Option {
	return func(b *serviceBuilder) {
		b.productStore = store
	}
}

// WithCatalogStore sets the store cart operations resolve SKUs against.
// It defaults to the product store.
func WithCatalogStore(store ProductStore) Option {
	return func(b *serviceBuilder) {
		b.catalogStore = store
	}
}

func WithRecipeStore(store RecipeStore) Option {
	return func(b *serviceBuilder) {
		b.recipeStore = store
	}
}

func WithInquiryStore(store InquiryStore) Option {
	return func(b *serviceBuilder) {
		b.inquiryStore = store
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(b *serviceBuilder) {
		b.notifier = notifier
	}
}

// WithNotificationEnqueuer defers inquiry notifications to a job queue.
// When set it takes precedence over a direct Notifier.
func WithNotificationEnqueuer(enqueuer NotificationEnqueuer) Option {
	return func(b *serviceBuilder) {
		b.enqueuer = enqueuer
	}
}

func defaultServiceBuilder(runtime Config) serviceBuilder {
	loggerProvider, logger := glog.Resolve("bakery", nil, nil)
	return serviceBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return serviceErrorMapper(err)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// NewStaticConfigLoader serves a fixed raw config map.
func NewStaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

// EnvConfigLoader maps process environment variables onto raw config keys.
type EnvConfigLoader struct {
	Lookup func(key string) (string, bool)
}

func NewEnvConfigLoader() *EnvConfigLoader {
	return &EnvConfigLoader{Lookup: os.LookupEnv}
}

func (l *EnvConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	lookup := os.LookupEnv
	if l != nil && l.Lookup != nil {
		lookup = l.Lookup
	}
	read := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	raw := map[string]any{}
	section := func(name string) map[string]any {
		existing, ok := raw[name].(map[string]any)
		if !ok {
			existing = map[string]any{}
			raw[name] = existing
		}
		return existing
	}

	if value, ok := read("SERVICE_NAME"); ok {
		raw["service_name"] = value
	}
	if value, ok := read("COOKIE_SIGNING_SECRET"); ok {
		section("cart")["secret"] = value
	}
	if value, ok := read("CART_COOKIE_NAME"); ok {
		section("cart")["cookie_name"] = value
	}
	if value, ok := read("CART_COOKIE_MAX_AGE"); ok {
		maxAge, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("core: CART_COOKIE_MAX_AGE: %w", err)
		}
		section("cart")["max_age"] = maxAge
	}
	if value, ok := read("CART_COOKIE_SECURE"); ok {
		secure, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("core: CART_COOKIE_SECURE: %w", err)
		}
		section("cart")["secure"] = secure
	}
	if value, ok := read("HTTP_ADDR"); ok {
		section("http")["addr"] = value
	} else if port, ok := read("PORT"); ok {
		if _, err := strconv.Atoi(port); err != nil {
			return nil, fmt.Errorf("core: PORT must be numeric: %w", err)
		}
		section("http")["addr"] = ":" + port
	}
	if value, ok := read("ADMIN_USER"); ok {
		section("admin")["user"] = value
	}
	if value, ok := read("ADMIN_PASS"); ok {
		section("admin")["pass"] = value
	}
	if value, ok := read("DATABASE_URL"); ok {
		section("database")["url"] = value
	}
	if value, ok := read("DATABASE_DRIVER"); ok {
		section("database")["driver"] = value
	}
	if value, ok := read("DATABASE_DEBUG"); ok {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("core: DATABASE_DEBUG: %w", err)
		}
		section("database")["debug"] = debug
	}
	if value, ok := read("DATA_DIR"); ok {
		section("data")["dir"] = value
	}
	for env, key := range map[string]string{
		"EMAIL_HOST": "host",
		"EMAIL_USER": "user",
		"EMAIL_PASS": "pass",
		"EMAIL_FROM": "from",
		"EMAIL_TO":   "to",
	} {
		if value, ok := read(env); ok {
			section("email")[key] = value
		}
	}
	if value, ok := read("EMAIL_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("core: EMAIL_PORT must be numeric: %w", err)
		}
		section("email")["port"] = port
	}
	return raw, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

// Load decodes the raw layer over defaults. Validation runs once all layers
// are resolved, since the signing secret may come from the runtime layer.
func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw, cfgx.WithDefaults(defaults))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

// ResolveConfig runs the same layering NewService uses, for callers that
// need the final configuration before building stores.
func ResolveConfig(ctx context.Context, runtime Config, provider ConfigProvider) (Config, error) {
	if provider == nil {
		provider = NewCfgxConfigProvider(nil)
	}
	defaults := DefaultConfig()
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return Config{}, err
	}
	return GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	put := func(section string, key string, value any, present bool) {
		if !includeZero && !present {
			return
		}
		if section == "" {
			layer[key] = value
			return
		}
		values, ok := layer[section].(map[string]any)
		if !ok {
			values = map[string]any{}
			layer[section] = values
		}
		values[key] = value
	}
	set := func(value string) bool { return strings.TrimSpace(value) != "" }

	put("", "service_name", cfg.ServiceName, set(cfg.ServiceName))

	put("cart", "secret", cfg.Cart.Secret, set(cfg.Cart.Secret))
	put("cart", "cookie_name", cfg.Cart.CookieName, set(cfg.Cart.CookieName))
	put("cart", "max_age", cfg.Cart.MaxAge, cfg.Cart.MaxAge != 0)
	put("cart", "secure", cfg.Cart.Secure, cfg.Cart.Secure)

	put("http", "addr", cfg.HTTP.Addr, set(cfg.HTTP.Addr))

	put("admin", "user", cfg.Admin.User, set(cfg.Admin.User))
	put("admin", "pass", cfg.Admin.Pass, set(cfg.Admin.Pass))

	put("database", "url", cfg.Database.URL, set(cfg.Database.URL))
	put("database", "driver", cfg.Database.Driver, set(cfg.Database.Driver))
	put("database", "debug", cfg.Database.Debug, cfg.Database.Debug)

	put("data", "dir", cfg.Data.Dir, set(cfg.Data.Dir))

	put("email", "host", cfg.Email.Host, set(cfg.Email.Host))
	put("email", "port", cfg.Email.Port, cfg.Email.Port != 0)
	put("email", "user", cfg.Email.User, set(cfg.Email.User))
	put("email", "pass", cfg.Email.Pass, set(cfg.Email.Pass))
	put("email", "from", cfg.Email.From, set(cfg.Email.From))
	put("email", "to", cfg.Email.To, set(cfg.Email.To))
	return layer
}
