package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	bakeryquery "github.com/goliatone/go-bakery/query"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.facade.Queries().ListProducts.Query(r.Context(), bakeryquery.ListProductsMessage{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.facade.Queries().GetProduct.Query(r.Context(), bakeryquery.GetProductMessage{
		Slug: chi.URLParam(r, "slug"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.facade.Queries().ListRecipes.Query(r.Context(), bakeryquery.ListRecipesMessage{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": recipes})
}

// getRecipe only serves published recipes; drafts answer not found.
func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.facade.Queries().GetRecipe.Query(r.Context(), bakeryquery.GetRecipeMessage{
		Slug: chi.URLParam(r, "slug"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}
