package core

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-bakery/cart"
)

func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	if s == nil || s.catalogStore == nil {
		return Catalog{}, ErrProductStoreRequired
	}
	products, err := s.catalogStore.List(ctx)
	if err != nil {
		return Catalog{}, s.mapError(err)
	}
	return NewCatalog(products), nil
}

// LoadCart decodes and normalizes a token against the current catalog. A
// token that fails verification yields an empty cart, never an error.
func (s *Service) LoadCart(ctx context.Context, token string) (CartView, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return CartView{}, err
	}
	current := s.readCart(token, catalog)
	return CartView{
		Cart:  current,
		Count: cart.CountItems(current),
		Lines: catalog.Lines(current),
	}, nil
}

func (s *Service) AddToCart(ctx context.Context, token string, sku string, qty int) (result CartMutation, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "add_to_cart", err, map[string]any{"sku": sku, "qty": qty})
	}()
	return s.setCartItem(ctx, token, sku, qty)
}

func (s *Service) UpdateCartItem(ctx context.Context, token string, sku string, qty int) (result CartMutation, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "update_cart_item", err, map[string]any{"sku": sku, "qty": qty})
	}()
	return s.setCartItem(ctx, token, sku, qty)
}

// RemoveCartItem drops sku from the cart. Unknown skus are not an error.
func (s *Service) RemoveCartItem(ctx context.Context, token string, sku string) (result CartMutation, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "remove_cart_item", err, map[string]any{"sku": sku})
	}()
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return CartMutation{}, err
	}
	next := cart.Upsert(s.readCart(token, catalog), trimmed(sku), 0)
	return s.mutation(next), nil
}

func (s *Service) setCartItem(ctx context.Context, token string, sku string, qty int) (CartMutation, error) {
	sku = trimmed(sku)
	if sku == "" {
		return CartMutation{}, badInput("sku is required", ServiceErrorBadInput)
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return CartMutation{}, err
	}
	if !catalog.Has(sku) {
		return CartMutation{}, badInput(fmt.Sprintf("unknown sku %q", sku), ServiceErrorUnknownSKU)
	}
	next := cart.Upsert(s.readCart(token, catalog), sku, cart.ClampQty(qty))
	return s.mutation(next), nil
}

func (s *Service) readCart(token string, catalog cart.Catalog) cart.Cart {
	raw, ok := s.codec.Decode(token)
	if !ok {
		return cart.Normalize(cart.Raw{}, catalog)
	}
	return cart.Normalize(raw, catalog)
}

func (s *Service) mutation(next cart.Cart) CartMutation {
	return CartMutation{
		Cart:  next,
		Token: s.codec.Encode(next),
		Count: cart.CountItems(next),
	}
}
