package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCartCookieName = "wa_cart"
	DefaultCartMaxAge     = 30 * 24 * time.Hour
)

type CartConfig struct {
	Secret     string        `koanf:"secret" mapstructure:"secret"`
	CookieName string        `koanf:"cookie_name" mapstructure:"cookie_name"`
	MaxAge     time.Duration `koanf:"max_age" mapstructure:"max_age"`
	Secure     bool          `koanf:"secure" mapstructure:"secure"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr" mapstructure:"addr"`
}

type AdminConfig struct {
	User string `koanf:"user" mapstructure:"user"`
	Pass string `koanf:"pass" mapstructure:"pass"`
}

type DatabaseConfig struct {
	URL    string `koanf:"url" mapstructure:"url"`
	Driver string `koanf:"driver" mapstructure:"driver"`
	Debug  bool   `koanf:"debug" mapstructure:"debug"`
}

type DataConfig struct {
	Dir string `koanf:"dir" mapstructure:"dir"`
}

type EmailConfig struct {
	Host string `koanf:"host" mapstructure:"host"`
	Port int    `koanf:"port" mapstructure:"port"`
	User string `koanf:"user" mapstructure:"user"`
	Pass string `koanf:"pass" mapstructure:"pass"`
	From string `koanf:"from" mapstructure:"from"`
	To   string `koanf:"to" mapstructure:"to"`
}

type Config struct {
	ServiceName string         `koanf:"service_name" mapstructure:"service_name"`
	Cart        CartConfig     `koanf:"cart" mapstructure:"cart"`
	HTTP        HTTPConfig     `koanf:"http" mapstructure:"http"`
	Admin       AdminConfig    `koanf:"admin" mapstructure:"admin"`
	Database    DatabaseConfig `koanf:"database" mapstructure:"database"`
	Data        DataConfig     `koanf:"data" mapstructure:"data"`
	Email       EmailConfig    `koanf:"email" mapstructure:"email"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "bakery",
		Cart: CartConfig{
			CookieName: DefaultCartCookieName,
			MaxAge:     DefaultCartMaxAge,
		},
		HTTP:  HTTPConfig{Addr: ":3000"},
		Admin: AdminConfig{User: "admin", Pass: "admin"},
		Data:  DataConfig{Dir: "data"},
		Email: EmailConfig{Port: 587},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Cart.Secret) == "" {
		return fmt.Errorf("core: cart.secret is required (COOKIE_SIGNING_SECRET is not set)")
	}
	if c.Cart.MaxAge < 0 {
		return fmt.Errorf("core: cart.max_age must not be negative")
	}
	switch strings.TrimSpace(c.Database.Driver) {
	case "", "postgres", "sqlite3":
	default:
		return fmt.Errorf("core: database.driver %q is not supported", c.Database.Driver)
	}
	return nil
}

// DatabaseConfigured reports whether a usable database url is present. The
// sample url shipped in example env files counts as unset.
func (c Config) DatabaseConfigured() bool {
	url := strings.TrimSpace(c.Database.URL)
	if url == "" {
		return false
	}
	return !strings.Contains(url, "host:5432/db")
}

func (c Config) EmailConfigured() bool {
	return strings.TrimSpace(c.Email.Host) != "" &&
		strings.TrimSpace(c.Email.From) != "" &&
		strings.TrimSpace(c.Email.To) != ""
}

// DatabaseDriver returns the configured driver, inferring it from the url
// scheme when unset.
func (c Config) DatabaseDriver() string {
	if driver := strings.TrimSpace(c.Database.Driver); driver != "" {
		return driver
	}
	url := strings.ToLower(strings.TrimSpace(c.Database.URL))
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"), strings.HasSuffix(url, ".sqlite"):
		return "sqlite3"
	default:
		return "postgres"
	}
}
