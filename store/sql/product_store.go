package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ProductStore struct {
	db   *bun.DB
	repo repository.Repository[*productRecord]
}

func NewProductStore(db *bun.DB) (*ProductStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*productRecord](db, productHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid product repository wiring: %w", err)
		}
	}
	return &ProductStore{db: db, repo: repo}, nil
}

func (s *ProductStore) List(ctx context.Context) ([]core.Product, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: product store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("name ASC"),
		repository.SelectPaginate(listLimit, 0),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.Product, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (core.Product, error) {
	if s == nil || s.repo == nil {
		return core.Product{}, fmt.Errorf("sqlstore: product store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return core.Product{}, fmt.Errorf("sqlstore: product %q: %w", id, core.ErrNotFound)
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return core.Product{}, notFound("product", id, err)
	}
	return record.toDomain(), nil
}

func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (core.Product, error) {
	return s.findOne(ctx, "slug", slug)
}

func (s *ProductStore) GetBySKU(ctx context.Context, sku string) (core.Product, error) {
	return s.findOne(ctx, "sku", sku)
}

func (s *ProductStore) findOne(ctx context.Context, column string, value string) (core.Product, error) {
	if s == nil || s.db == nil {
		return core.Product{}, fmt.Errorf("sqlstore: product store is not configured")
	}
	record := &productRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.? = ?", bun.Ident(column), strings.TrimSpace(value)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return core.Product{}, notFound("product", value, err)
	}
	return record.toDomain(), nil
}

func (s *ProductStore) Create(ctx context.Context, product core.Product) (core.Product, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return core.Product{}, fmt.Errorf("sqlstore: product store is not configured")
	}
	now := time.Now().UTC()
	record := newProductRecord(product)
	record.ID = uuid.NewString()
	record.CreatedAt = now
	record.UpdatedAt = now

	var created core.Product
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := productConflict(ctx, tx, record); err != nil {
			return err
		}
		inserted, err := s.repo.CreateTx(ctx, tx, record)
		if err != nil {
			return uniqueViolation("product", err)
		}
		created = inserted.toDomain()
		return nil
	})
	if err != nil {
		return core.Product{}, err
	}
	return created, nil
}

func (s *ProductStore) Update(ctx context.Context, product core.Product) (core.Product, error) {
	if s == nil || s.db == nil {
		return core.Product{}, fmt.Errorf("sqlstore: product store is not configured")
	}
	id := strings.TrimSpace(product.ID)
	if parseUUID(id) == uuid.Nil {
		return core.Product{}, fmt.Errorf("sqlstore: product %q: %w", id, core.ErrNotFound)
	}

	var updated core.Product
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current := &productRecord{}
		if err := tx.NewSelect().Model(current).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return notFound("product", id, err)
		}
		record := newProductRecord(product)
		record.ID = id
		record.CreatedAt = current.CreatedAt
		record.UpdatedAt = time.Now().UTC()
		if err := productConflict(ctx, tx, record); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model(record).
			Column("sku", "slug", "name", "description", "image_url", "price_display", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return uniqueViolation("product", err)
		}
		updated = record.toDomain()
		return nil
	})
	if err != nil {
		return core.Product{}, err
	}
	return updated, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: product store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return nil
	}
	_, err := s.db.NewDelete().
		Model((*productRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func productConflict(ctx context.Context, db bun.IDB, record *productRecord) error {
	var existing []productRecord
	err := db.NewSelect().
		Model(&existing).
		Where("?TableAlias.id <> ?", record.ID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.sku = ?", record.SKU).WhereOr("?TableAlias.slug = ?", record.Slug)
		}).
		Scan(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.SKU == record.SKU {
			return fmt.Errorf("sqlstore: product sku %q: %w", record.SKU, core.ErrConflict)
		}
		if other.Slug == record.Slug {
			return fmt.Errorf("sqlstore: product slug %q: %w", record.Slug, core.ErrConflict)
		}
	}
	return nil
}
