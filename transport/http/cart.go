package httptransport

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/goliatone/go-bakery/cart"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	bakeryquery "github.com/goliatone/go-bakery/query"
	gocmd "github.com/goliatone/go-command"
)

// A cookie that fails verification reads as an empty cart, so cart reads
// never fail on the token itself.
func (h *Handler) loadCart(ctx context.Context, r *http.Request) (core.CartView, error) {
	return h.facade.Queries().LoadCart.Query(ctx, bakeryquery.LoadCartMessage{Token: h.cookies.Token(r)})
}

func (h *Handler) showCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.loadCart(r.Context(), r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) cartBadge(w http.ResponseWriter, r *http.Request) {
	view, err := h.loadCart(r.Context(), r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeBadge(w, view.Count)
}

func writeBadge(w http.ResponseWriter, count int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if count <= 0 {
		return
	}
	fmt.Fprintf(w, `<span class="badge">%s</span>`, html.EscapeString(fmt.Sprint(count)))
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, func(ctx context.Context, token string) error {
		return h.facade.Commands().AddCartItem.Execute(ctx, bakerycommand.AddCartItemMessage{
			Token: token,
			SKU:   r.FormValue("sku"),
			Qty:   cart.ParseQty(r.FormValue("qty")),
		})
	})
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, func(ctx context.Context, token string) error {
		return h.facade.Commands().UpdateCartItem.Execute(ctx, bakerycommand.UpdateCartItemMessage{
			Token: token,
			SKU:   r.FormValue("sku"),
			Qty:   cart.ParseQty(r.FormValue("qty")),
		})
	})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, func(ctx context.Context, token string) error {
		return h.facade.Commands().RemoveCartItem.Execute(ctx, bakerycommand.RemoveCartItemMessage{
			Token: token,
			SKU:   r.FormValue("sku"),
		})
	})
}

// mutateCart runs a cart command and reissues the cookie. htmx requests get
// the new cart as JSON plus an HX-Trigger; plain form posts are redirected
// back to the cart.
func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, token string) error) {
	collector := gocmd.NewResult[core.CartMutation]()
	ctx := gocmd.ContextWithResult(r.Context(), collector)
	if err := run(ctx, h.cookies.Token(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	mutation, ok := collector.Load()
	if !ok {
		h.writeError(w, r, fmt.Errorf("httptransport: cart command produced no result"))
		return
	}
	h.cookies.SetToken(w, mutation.Token)

	if isHTMX(r) || wantsJSON(r) {
		if isHTMX(r) {
			w.Header().Set(headerHXTrigger, eventCartUpdate)
		}
		writeJSON(w, http.StatusOK, mutation)
		return
	}
	redirect(w, r, "/cart")
}
