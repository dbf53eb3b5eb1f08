package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/catalog"
	"extreme/internal/store"
)

type CategoryPayload struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=500"`
	Icon          string `json:"icon" validate:"max=50"`
	OrderPosition int    `json:"order_position" validate:"gte=0"`
	IsActive      bool   `json:"is_active"`
}

func (p *CategoryPayload) toCategory() *store.Category {
	return &store.Category{
		Name:          p.Name,
		Description:   p.Description,
		Icon:          p.Icon,
		OrderPosition: p.OrderPosition,
		IsActive:      p.IsActive,
	}
}

// adminListCategoriesHandler godoc
//
//	@Summary		Lists every category, active or not
//	@Tags			admin,categories
//	@Produce		json
//	@Success		200	{array}	store.Category
//	@Security		ApiKeyAuth
//	@Router			/admin/categories [get]
func (app *application) adminListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

type categoryTreeResponse struct {
	Category         store.Category    `json:"category"`
	SubcategoryCount int               `json:"subcategory_count"`
	Rows             []catalog.TreeRow `json:"rows"`
}

// getCategoryTreeHandler godoc
//
//	@Summary		Renders a category's subcategory tree
//	@Description	Returns the fully expanded subcategory forest of a category with per-row depth, plus the flat descendant count
//	@Tags			categories
//	@Produce		json
//	@Param			categoryID	path		string	true	"Category ID"
//	@Success		200			{object}	categoryTreeResponse
//	@Failure		404			{object}	error
//	@Router			/categories/{categoryID}/tree [get]
func (app *application) getCategoryTreeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")

	category, err := app.store.Categories.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	subcategories, err := app.store.Subcategories.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	nav := catalog.NewNavigator(subcategories)
	resp := categoryTreeResponse{
		Category:         *category,
		SubcategoryCount: nav.CountDescendants(id),
		Rows:             nav.RenderTreeExpanded(id),
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createCategoryHandler godoc
//
//	@Summary		Creates a category
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CategoryPayload	true	"Category fields"
//	@Success		201		{object}	store.Category
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/categories [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Categories.Create(r.Context(), payload.toCategory())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.refreshStorefrontAsync()

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCategoryHandler godoc
//
//	@Summary		Updates a category
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Param			categoryID	path		string			true	"Category ID"
//	@Param			payload		body		CategoryPayload	true	"Category fields"
//	@Success		200			{object}	store.Category
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID} [put]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Categories.Update(r.Context(), chi.URLParam(r, "categoryID"), payload.toCategory())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.refreshStorefrontAsync()

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCategoryHandler godoc
//
//	@Summary		Deletes a category
//	@Description	Deletes the category; its subcategories cascade away with it
//	@Tags			admin,categories
//	@Param			categoryID	path	string	true	"Category ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")

	cascaded, err := app.store.Subcategories.CountByCategory(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Categories.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("category deleted", "id", id, "cascaded_subcategories", cascaded, "admin", getAdminFromContext(r))
	app.refreshStorefrontAsync()

	w.WriteHeader(http.StatusNoContent)
}
