// Package httptransport serves the storefront over HTTP: catalog reads, the
// cookie cart, checkout and a basic-auth admin area.
package httptransport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	bakery "github.com/goliatone/go-bakery"
	"github.com/goliatone/go-bakery/cart"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	headerHXRequest = "HX-Request"
	headerHXTrigger = "HX-Trigger"
	eventCartUpdate = "cart-updated"
	adminRealm      = "bakery admin"
)

type Handler struct {
	facade    *bakery.Facade
	cookies   *cart.CookieStore
	logger    glog.Logger
	adminUser string
	adminPass string
}

type Option func(*Handler)

func WithLogger(logger glog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAdminCredentials sets the basic auth pair guarding /admin. An empty
// user disables the admin routes.
func WithAdminCredentials(user string, pass string) Option {
	return func(h *Handler) {
		h.adminUser = strings.TrimSpace(user)
		h.adminPass = pass
	}
}

func NewHandler(facade *bakery.Facade, cookies *cart.CookieStore, opts ...Option) (*Handler, error) {
	if facade == nil {
		return nil, fmt.Errorf("httptransport: facade is required")
	}
	if cookies == nil {
		return nil, fmt.Errorf("httptransport: cookie store is required")
	}
	h := &Handler{
		facade:  facade,
		cookies: cookies,
		logger:  glog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Routes builds the chi router for the storefront.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/healthz", h.health)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", h.listProducts)
		api.Get("/products/{slug}", h.getProduct)
		api.Get("/recipes", h.listRecipes)
		api.Get("/recipes/{slug}", h.getRecipe)
	})

	r.Route("/cart", func(c chi.Router) {
		c.Get("/", h.showCart)
		c.Get("/badge", h.cartBadge)
		c.Post("/add", h.addToCart)
		c.Post("/update", h.updateCartItem)
		c.Post("/remove", h.removeCartItem)
	})

	r.Post("/checkout", h.checkout)
	r.Get("/thank-you/{inquiryID}", h.thankYou)

	if h.adminUser != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.BasicAuth(adminRealm, map[string]string{h.adminUser: h.adminPass}))
			h.adminRoutes(admin)
		})
	}
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(headerHXRequest)), "true")
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
