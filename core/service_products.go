package core

import (
	"context"
	"fmt"
	"time"
)

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	if s == nil || s.productStore == nil {
		return nil, ErrProductStoreRequired
	}
	products, err := s.productStore.List(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	id = trimmed(id)
	if id == "" {
		return Product{}, badInput("product id is required", ServiceErrorBadInput)
	}
	product, err := s.productStore.GetByID(ctx, id)
	if err != nil {
		return Product{}, s.mapError(err)
	}
	return product, nil
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	slug = trimmed(slug)
	if slug == "" {
		return Product{}, notFound("product not found")
	}
	product, err := s.productStore.GetBySlug(ctx, slug)
	if err != nil {
		return Product{}, s.mapError(err)
	}
	return product, nil
}

func (s *Service) GetProductBySKU(ctx context.Context, sku string) (Product, error) {
	sku = trimmed(sku)
	if sku == "" {
		return Product{}, notFound("product not found")
	}
	product, err := s.productStore.GetBySKU(ctx, sku)
	if err != nil {
		return Product{}, s.mapError(err)
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (product Product, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "create_product", err, map[string]any{"sku": in.SKU})
	}()

	prepared, err := prepareProduct(in)
	if err != nil {
		return Product{}, err
	}
	product, err = s.productStore.Create(ctx, prepared)
	if err != nil {
		return Product{}, s.mapError(err)
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (product Product, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "update_product", err, map[string]any{"product_id": id, "sku": in.SKU})
	}()

	id = trimmed(id)
	if id == "" {
		return Product{}, badInput("product id is required", ServiceErrorBadInput)
	}
	prepared, err := prepareProduct(in)
	if err != nil {
		return Product{}, err
	}
	prepared.ID = id
	product, err = s.productStore.Update(ctx, prepared)
	if err != nil {
		return Product{}, s.mapError(err)
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "delete_product", err, map[string]any{"product_id": id})
	}()

	id = trimmed(id)
	if id == "" {
		return badInput("product id is required", ServiceErrorBadInput)
	}
	if err := s.productStore.Delete(ctx, id); err != nil {
		return s.mapError(err)
	}
	return nil
}

// prepareProduct trims and validates input, derives the slug from the name
// when none is given and sanitizes the description.
func prepareProduct(in ProductInput) (Product, error) {
	in.SKU = trimmed(in.SKU)
	in.Name = trimmed(in.Name)
	if err := in.Validate(); err != nil {
		return Product{}, validationError(err, "invalid product")
	}
	slug := Slugify(firstNonEmpty(in.Slug, in.Name))
	if slug == "" {
		return Product{}, badInput(fmt.Sprintf("product %q has no usable slug", in.Name), ServiceErrorBadInput)
	}
	return Product{
		SKU:          in.SKU,
		Slug:         slug,
		Name:         in.Name,
		Description:  SanitizeRichText(in.Description),
		ImageURL:     trimmed(in.ImageURL),
		PriceDisplay: trimmed(in.PriceDisplay),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed(value) != "" {
			return value
		}
	}
	return ""
}
