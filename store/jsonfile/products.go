package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/core"
	"github.com/google/uuid"
)

type ProductStore struct {
	doc *document[core.Product]
}

// NewProductStore stores products in <dir>/products.json.
func NewProductStore(dir string) *ProductStore {
	return &ProductStore{doc: newDocument[core.Product](filepath.Join(dir, ProductsFile))}
}

// List returns products ordered by name.
func (s *ProductStore) List(_ context.Context) ([]core.Product, error) {
	var out []core.Product
	err := s.doc.read(func(items []core.Product) error {
		out = append([]core.Product(nil), items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (core.Product, error) {
	return s.find("id", id, func(p core.Product) string { return p.ID })
}

func (s *ProductStore) GetBySlug(_ context.Context, slug string) (core.Product, error) {
	return s.find("slug", slug, func(p core.Product) string { return p.Slug })
}

func (s *ProductStore) GetBySKU(_ context.Context, sku string) (core.Product, error) {
	return s.find("sku", sku, func(p core.Product) string { return p.SKU })
}

func (s *ProductStore) find(field, value string, key func(core.Product) string) (core.Product, error) {
	value = strings.TrimSpace(value)
	var found core.Product
	ok := false
	err := s.doc.read(func(items []core.Product) error {
		for _, item := range items {
			if value != "" && key(item) == value {
				found, ok = item, true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return core.Product{}, err
	}
	if !ok {
		return core.Product{}, fmt.Errorf("jsonfile: product %s %q: %w", field, value, core.ErrNotFound)
	}
	return found, nil
}

func (s *ProductStore) Create(_ context.Context, product core.Product) (core.Product, error) {
	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	err := s.doc.update(func(items []core.Product) ([]core.Product, error) {
		if err := productConflict(items, product, -1); err != nil {
			return nil, err
		}
		return append(items, product), nil
	})
	if err != nil {
		return core.Product{}, err
	}
	return product, nil
}

func (s *ProductStore) Update(_ context.Context, product core.Product) (core.Product, error) {
	var updated core.Product
	err := s.doc.update(func(items []core.Product) ([]core.Product, error) {
		index := -1
		for idx, item := range items {
			if item.ID == product.ID {
				index = idx
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("jsonfile: product %q: %w", product.ID, core.ErrNotFound)
		}
		if err := productConflict(items, product, index); err != nil {
			return nil, err
		}
		product.CreatedAt = items[index].CreatedAt
		product.UpdatedAt = time.Now().UTC()
		items[index] = product
		updated = product
		return items, nil
	})
	if err != nil {
		return core.Product{}, err
	}
	return updated, nil
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	return s.doc.update(func(items []core.Product) ([]core.Product, error) {
		next := make([]core.Product, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				next = append(next, item)
			}
		}
		if len(next) == len(items) {
			return nil, nil
		}
		return next, nil
	})
}

func productConflict(items []core.Product, candidate core.Product, skip int) error {
	for idx, item := range items {
		if idx == skip {
			continue
		}
		if item.SKU == candidate.SKU {
			return fmt.Errorf("jsonfile: product sku %q: %w", candidate.SKU, core.ErrConflict)
		}
		if item.Slug == candidate.Slug {
			return fmt.Errorf("jsonfile: product slug %q: %w", candidate.Slug, core.ErrConflict)
		}
	}
	return nil
}
