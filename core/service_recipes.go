package core

import (
	"context"
	"fmt"
	"time"
)

func (s *Service) recipes() (RecipeStore, error) {
	if s == nil || s.recipeStore == nil {
		return nil, s.mapError(fmt.Errorf("recipes: %w", ErrStoreUnavailable))
	}
	return s.recipeStore, nil
}

// ListRecipes returns recipes newest first. Drafts are only included when
// includeDrafts is set.
func (s *Service) ListRecipes(ctx context.Context, includeDrafts bool) ([]Recipe, error) {
	store, err := s.recipes()
	if err != nil {
		return nil, err
	}
	recipes, err := store.List(ctx, includeDrafts)
	if err != nil {
		return nil, s.mapError(err)
	}
	return recipes, nil
}

func (s *Service) GetRecipeBySlug(ctx context.Context, slug string, includeDrafts bool) (Recipe, error) {
	store, err := s.recipes()
	if err != nil {
		return Recipe{}, err
	}
	slug = trimmed(slug)
	if slug == "" {
		return Recipe{}, notFound("recipe not found")
	}
	recipe, err := store.GetBySlug(ctx, slug, includeDrafts)
	if err != nil {
		return Recipe{}, s.mapError(err)
	}
	return recipe, nil
}

func (s *Service) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	store, err := s.recipes()
	if err != nil {
		return Recipe{}, err
	}
	id = trimmed(id)
	if id == "" {
		return Recipe{}, badInput("recipe id is required", ServiceErrorBadInput)
	}
	recipe, err := store.GetByID(ctx, id)
	if err != nil {
		return Recipe{}, s.mapError(err)
	}
	return recipe, nil
}

func (s *Service) CreateRecipe(ctx context.Context, in RecipeInput) (recipe Recipe, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "create_recipe", err, map[string]any{"title": in.Title})
	}()

	store, err := s.recipes()
	if err != nil {
		return Recipe{}, err
	}
	prepared, err := prepareRecipe(in)
	if err != nil {
		return Recipe{}, err
	}
	recipe, err = store.Create(ctx, prepared)
	if err != nil {
		return Recipe{}, s.mapError(err)
	}
	return recipe, nil
}

func (s *Service) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (recipe Recipe, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "update_recipe", err, map[string]any{"recipe_id": id})
	}()

	store, err := s.recipes()
	if err != nil {
		return Recipe{}, err
	}
	id = trimmed(id)
	if id == "" {
		return Recipe{}, badInput("recipe id is required", ServiceErrorBadInput)
	}
	prepared, err := prepareRecipe(in)
	if err != nil {
		return Recipe{}, err
	}
	prepared.ID = id
	recipe, err = store.Update(ctx, prepared)
	if err != nil {
		return Recipe{}, s.mapError(err)
	}
	return recipe, nil
}

func (s *Service) ToggleRecipePublished(ctx context.Context, id string) (recipe Recipe, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "toggle_recipe_published", err, map[string]any{"recipe_id": id})
	}()

	store, err := s.recipes()
	if err != nil {
		return Recipe{}, err
	}
	id = trimmed(id)
	if id == "" {
		return Recipe{}, badInput("recipe id is required", ServiceErrorBadInput)
	}
	recipe, err = store.TogglePublished(ctx, id)
	if err != nil {
		return Recipe{}, s.mapError(err)
	}
	return recipe, nil
}

func (s *Service) DeleteRecipe(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observeOperation(ctx, startedAt, "delete_recipe", err, map[string]any{"recipe_id": id})
	}()

	store, err := s.recipes()
	if err != nil {
		return err
	}
	id = trimmed(id)
	if id == "" {
		return badInput("recipe id is required", ServiceErrorBadInput)
	}
	if err := store.Delete(ctx, id); err != nil {
		return s.mapError(err)
	}
	return nil
}

func prepareRecipe(in RecipeInput) (Recipe, error) {
	in.Title = trimmed(in.Title)
	if err := in.Validate(); err != nil {
		return Recipe{}, validationError(err, "invalid recipe")
	}
	slug := Slugify(firstNonEmpty(in.Slug, in.Title))
	if slug == "" {
		return Recipe{}, badInput(fmt.Sprintf("recipe %q has no usable slug", in.Title), ServiceErrorBadInput)
	}
	return Recipe{
		Slug:       slug,
		Title:      in.Title,
		ImageURL:   trimmed(in.ImageURL),
		RecipeHTML: SanitizeRichText(in.RecipeHTML),
		Published:  in.Published,
	}, nil
}
