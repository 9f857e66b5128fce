package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	bakeryquery "github.com/goliatone/go-bakery/query"
	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const (
	adminProductsPath = "/admin/products"
	adminRecipesPath  = "/admin/recipes"
)

// adminRoutes mirrors the form-post routes of the admin pages and adds the
// REST verbs for JSON clients.
func (h *Handler) adminRoutes(r chi.Router) {
	r.Route("/products", func(p chi.Router) {
		p.Get("/", h.adminListProducts)
		p.Post("/", h.adminCreateProduct)
		p.Get("/{id}", h.adminGetProduct)
		p.Post("/{id}", h.adminUpdateProduct)
		p.Put("/{id}", h.adminUpdateProduct)
		p.Post("/{id}/delete", h.adminDeleteProduct)
		p.Delete("/{id}", h.adminDeleteProduct)
	})
	r.Route("/recipes", func(p chi.Router) {
		p.Get("/", h.adminListRecipes)
		p.Post("/", h.adminCreateRecipe)
		p.Get("/{id}", h.adminGetRecipe)
		p.Post("/{id}", h.adminUpdateRecipe)
		p.Put("/{id}", h.adminUpdateRecipe)
		p.Post("/{id}/toggle-published", h.adminToggleRecipe)
		p.Post("/{id}/delete", h.adminDeleteRecipe)
		p.Delete("/{id}", h.adminDeleteRecipe)
	})
	r.Route("/inquiries", func(p chi.Router) {
		p.Get("/", h.adminListInquiries)
		p.Get("/{id}", h.adminGetInquiry)
	})
}

func (h *Handler) adminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.facade.Queries().ListProducts.Query(r.Context(), bakeryquery.ListProductsMessage{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) adminGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.facade.Queries().GetProduct.Query(r.Context(), bakeryquery.GetProductMessage{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProductInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	collector := gocmd.NewResult[core.Product]()
	if err := h.facade.Commands().CreateProduct.Execute(
		gocmd.ContextWithResult(r.Context(), collector),
		bakerycommand.CreateProductMessage{Input: in},
	); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAdminResult[core.Product](w, r, http.StatusCreated, adminProductsPath, collector)
}

func (h *Handler) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProductInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	collector := gocmd.NewResult[core.Product]()
	if err := h.facade.Commands().UpdateProduct.Execute(
		gocmd.ContextWithResult(r.Context(), collector),
		bakerycommand.UpdateProductMessage{ID: chi.URLParam(r, "id"), Input: in},
	); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAdminResult[core.Product](w, r, http.StatusOK, adminProductsPath, collector)
}

func (h *Handler) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.Commands().DeleteProduct.Execute(r.Context(), bakerycommand.DeleteProductMessage{
		ID: chi.URLParam(r, "id"),
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.adminDeleted(w, r, adminProductsPath)
}

func (h *Handler) adminListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.facade.Queries().ListRecipes.Query(r.Context(), bakeryquery.ListRecipesMessage{IncludeDrafts: true})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": recipes})
}

func (h *Handler) adminGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.facade.Queries().GetRecipe.Query(r.Context(), bakeryquery.GetRecipeMessage{
		ID:            chi.URLParam(r, "id"),
		IncludeDrafts: true,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *Handler) adminCreateRecipe(w http.ResponseWriter, r *http.Request) {
	in, err := decodeRecipeInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	collector := gocmd.NewResult[core.Recipe]()
	if err := h.facade.Commands().CreateRecipe.Execute(
		gocmd.ContextWithResult(r.Context(), collector),
		bakerycommand.CreateRecipeMessage{Input: in},
	); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAdminResult[core.Recipe](w, r, http.StatusCreated, adminRecipesPath, collector)
}

func (h *Handler) adminUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	in, err := decodeRecipeInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	collector := gocmd.NewResult[core.Recipe]()
	if err := h.facade.Commands().UpdateRecipe.Execute(
		gocmd.ContextWithResult(r.Context(), collector),
		bakerycommand.UpdateRecipeMessage{ID: chi.URLParam(r, "id"), Input: in},
	); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAdminResult[core.Recipe](w, r, http.StatusOK, adminRecipesPath, collector)
}

func (h *Handler) adminToggleRecipe(w http.ResponseWriter, r *http.Request) {
	collector := gocmd.NewResult[core.Recipe]()
	if err := h.facade.Commands().ToggleRecipePublished.Execute(
		gocmd.ContextWithResult(r.Context(), collector),
		bakerycommand.ToggleRecipePublishedMessage{ID: chi.URLParam(r, "id")},
	); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAdminResult[core.Recipe](w, r, http.StatusOK, adminRecipesPath, collector)
}

func (h *Handler) adminDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.Commands().DeleteRecipe.Execute(r.Context(), bakerycommand.DeleteRecipeMessage{
		ID: chi.URLParam(r, "id"),
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.adminDeleted(w, r, adminRecipesPath)
}

func (h *Handler) adminListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.facade.Queries().ListInquiries.Query(r.Context(), bakeryquery.ListInquiriesMessage{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": inquiries})
}

func (h *Handler) adminGetInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.facade.Queries().GetInquiry.Query(r.Context(), bakeryquery.GetInquiryMessage{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

// writeAdminResult redirects form posts back to the list page and answers
// JSON clients with the stored record.
func writeAdminResult[T any](w http.ResponseWriter, r *http.Request, status int, listPath string, result interface{ Load() (T, bool) }) {
	if !wantsJSON(r) {
		redirect(w, r, listPath)
		return
	}
	value, _ := result.Load()
	writeJSON(w, status, value)
}

func (h *Handler) adminDeleted(w http.ResponseWriter, r *http.Request, listPath string) {
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirect(w, r, listPath)
}

func decodeProductInput(r *http.Request) (core.ProductInput, error) {
	var in core.ProductInput
	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return core.ProductInput{}, invalidBody(err)
		}
		return in, nil
	}
	return core.ProductInput{
		SKU:          r.FormValue("sku"),
		Slug:         r.FormValue("slug"),
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		ImageURL:     r.FormValue("image_url"),
		PriceDisplay: r.FormValue("price_display"),
	}, nil
}

func decodeRecipeInput(r *http.Request) (core.RecipeInput, error) {
	var in core.RecipeInput
	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return core.RecipeInput{}, invalidBody(err)
		}
		return in, nil
	}
	return core.RecipeInput{
		Title:      r.FormValue("title"),
		Slug:       r.FormValue("slug"),
		ImageURL:   r.FormValue("image_url"),
		RecipeHTML: r.FormValue("recipe_html"),
		Published:  formBool(r.FormValue("published")),
	}, nil
}

// formBool treats any checkbox value as set except explicit false values.
func formBool(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return true
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func invalidBody(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ServiceErrorBadInput)
}
