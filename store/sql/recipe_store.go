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

type RecipeStore struct {
	db   *bun.DB
	repo repository.Repository[*recipeRecord]
}

func NewRecipeStore(db *bun.DB) (*RecipeStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*recipeRecord](db, recipeHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid recipe repository wiring: %w", err)
		}
	}
	return &RecipeStore{db: db, repo: repo}, nil
}

func (s *RecipeStore) List(ctx context.Context, includeDrafts bool) ([]core.Recipe, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	criteria := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(listLimit, 0),
	}
	if !includeDrafts {
		criteria = append(criteria, publishedOnly)
	}
	records, _, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	out := make([]core.Recipe, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

// publishedOnly binds a real boolean; a string criterion never matches the
// sqlite integer column.
func publishedOnly(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("?TableAlias.published = ?", true)
}

func (s *RecipeStore) GetByID(ctx context.Context, id string) (core.Recipe, error) {
	if s == nil || s.repo == nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe %q: %w", id, core.ErrNotFound)
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return core.Recipe{}, notFound("recipe", id, err)
	}
	return record.toDomain(), nil
}

func (s *RecipeStore) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (core.Recipe, error) {
	if s == nil || s.db == nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	slug = strings.TrimSpace(slug)
	record := &recipeRecord{}
	query := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.slug = ?", slug)
	if !includeDrafts {
		query = publishedOnly(query)
	}
	if err := query.Limit(1).Scan(ctx); err != nil {
		return core.Recipe{}, notFound("recipe", slug, err)
	}
	return record.toDomain(), nil
}

func (s *RecipeStore) Create(ctx context.Context, recipe core.Recipe) (core.Recipe, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	now := time.Now().UTC()
	record := newRecipeRecord(recipe)
	record.ID = uuid.NewString()
	record.CreatedAt = now
	record.UpdatedAt = now

	var created core.Recipe
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := recipeConflict(ctx, tx, record); err != nil {
			return err
		}
		inserted, err := s.repo.CreateTx(ctx, tx, record)
		if err != nil {
			return uniqueViolation("recipe", err)
		}
		created = inserted.toDomain()
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return created, nil
}

func (s *RecipeStore) Update(ctx context.Context, recipe core.Recipe) (core.Recipe, error) {
	if s == nil || s.db == nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	id := strings.TrimSpace(recipe.ID)
	if parseUUID(id) == uuid.Nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe %q: %w", id, core.ErrNotFound)
	}

	var updated core.Recipe
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current := &recipeRecord{}
		if err := tx.NewSelect().Model(current).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return notFound("recipe", id, err)
		}
		record := newRecipeRecord(recipe)
		record.ID = id
		record.CreatedAt = current.CreatedAt
		record.UpdatedAt = time.Now().UTC()
		if err := recipeConflict(ctx, tx, record); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model(record).
			Column("slug", "title", "image_url", "recipe_html", "published", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return uniqueViolation("recipe", err)
		}
		updated = record.toDomain()
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return updated, nil
}

func (s *RecipeStore) TogglePublished(ctx context.Context, id string) (core.Recipe, error) {
	if s == nil || s.db == nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return core.Recipe{}, fmt.Errorf("sqlstore: recipe %q: %w", id, core.ErrNotFound)
	}

	var toggled core.Recipe
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := &recipeRecord{}
		if err := tx.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return notFound("recipe", id, err)
		}
		record.Published = !record.Published
		record.UpdatedAt = time.Now().UTC()
		if _, err := tx.NewUpdate().
			Model(record).
			Column("published", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		toggled = record.toDomain()
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return toggled, nil
}

func (s *RecipeStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: recipe store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return nil
	}
	_, err := s.db.NewDelete().
		Model((*recipeRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func recipeConflict(ctx context.Context, db bun.IDB, record *recipeRecord) error {
	count, err := db.NewSelect().
		Model((*recipeRecord)(nil)).
		Where("?TableAlias.id <> ?", record.ID).
		Where("?TableAlias.slug = ?", record.Slug).
		Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("sqlstore: recipe slug %q: %w", record.Slug, core.ErrConflict)
	}
	return nil
}
