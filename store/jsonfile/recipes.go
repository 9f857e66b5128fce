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

type RecipeStore struct {
	doc *document[core.Recipe]
}

// NewRecipeStore stores recipes in <dir>/recipes.json.
func NewRecipeStore(dir string) *RecipeStore {
	return &RecipeStore{doc: newDocument[core.Recipe](filepath.Join(dir, RecipesFile))}
}

// List returns recipes newest first; drafts only when includeDrafts is set.
func (s *RecipeStore) List(_ context.Context, includeDrafts bool) ([]core.Recipe, error) {
	var out []core.Recipe
	err := s.doc.read(func(items []core.Recipe) error {
		for _, item := range items {
			if includeDrafts || item.Published {
				out = append(out, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RecipeStore) GetByID(_ context.Context, id string) (core.Recipe, error) {
	return s.find("id", id, true, func(r core.Recipe) string { return r.ID })
}

func (s *RecipeStore) GetBySlug(_ context.Context, slug string, includeDrafts bool) (core.Recipe, error) {
	return s.find("slug", slug, includeDrafts, func(r core.Recipe) string { return r.Slug })
}

func (s *RecipeStore) find(field, value string, includeDrafts bool, key func(core.Recipe) string) (core.Recipe, error) {
	value = strings.TrimSpace(value)
	var found core.Recipe
	ok := false
	err := s.doc.read(func(items []core.Recipe) error {
		for _, item := range items {
			if value == "" || key(item) != value {
				continue
			}
			if !includeDrafts && !item.Published {
				continue
			}
			found, ok = item, true
			return nil
		}
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	if !ok {
		return core.Recipe{}, fmt.Errorf("jsonfile: recipe %s %q: %w", field, value, core.ErrNotFound)
	}
	return found, nil
}

func (s *RecipeStore) Create(_ context.Context, recipe core.Recipe) (core.Recipe, error) {
	now := time.Now().UTC()
	recipe.ID = uuid.NewString()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	err := s.doc.update(func(items []core.Recipe) ([]core.Recipe, error) {
		if err := recipeConflict(items, recipe, -1); err != nil {
			return nil, err
		}
		return append(items, recipe), nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return recipe, nil
}

func (s *RecipeStore) Update(_ context.Context, recipe core.Recipe) (core.Recipe, error) {
	var updated core.Recipe
	err := s.mutate(recipe.ID, func(items []core.Recipe, index int) error {
		if err := recipeConflict(items, recipe, index); err != nil {
			return err
		}
		recipe.CreatedAt = items[index].CreatedAt
		recipe.UpdatedAt = time.Now().UTC()
		items[index] = recipe
		updated = recipe
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return updated, nil
}

func (s *RecipeStore) TogglePublished(_ context.Context, id string) (core.Recipe, error) {
	var toggled core.Recipe
	err := s.mutate(id, func(items []core.Recipe, index int) error {
		items[index].Published = !items[index].Published
		items[index].UpdatedAt = time.Now().UTC()
		toggled = items[index]
		return nil
	})
	if err != nil {
		return core.Recipe{}, err
	}
	return toggled, nil
}

func (s *RecipeStore) Delete(_ context.Context, id string) error {
	return s.doc.update(func(items []core.Recipe) ([]core.Recipe, error) {
		next := make([]core.Recipe, 0, len(items))
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

func (s *RecipeStore) mutate(id string, fn func(items []core.Recipe, index int) error) error {
	id = strings.TrimSpace(id)
	return s.doc.update(func(items []core.Recipe) ([]core.Recipe, error) {
		for idx, item := range items {
			if item.ID == id {
				if err := fn(items, idx); err != nil {
					return nil, err
				}
				return items, nil
			}
		}
		return nil, fmt.Errorf("jsonfile: recipe %q: %w", id, core.ErrNotFound)
	})
}

func recipeConflict(items []core.Recipe, candidate core.Recipe, skip int) error {
	for idx, item := range items {
		if idx != skip && item.Slug == candidate.Slug {
			return fmt.Errorf("jsonfile: recipe slug %q: %w", candidate.Slug, core.ErrConflict)
		}
	}
	return nil
}
