package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/store"
)

type SubcategoryPayload struct {
	CategoryID    string  `json:"category_id" validate:"required,uuid"`
	ParentID      *string `json:"parent_id" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,max=100"`
	OrderPosition int     `json:"order_position" validate:"gte=0"`
	IsActive      bool    `json:"is_active"`
}

func (p *SubcategoryPayload) toSubcategory() *store.Subcategory {
	return &store.Subcategory{
		CategoryID:    p.CategoryID,
		ParentID:      p.ParentID,
		Name:          p.Name,
		OrderPosition: p.OrderPosition,
		IsActive:      p.IsActive,
	}
}

// adminListSubcategoriesHandler godoc
//
//	@Summary		Lists every subcategory, active or not
//	@Tags			admin,subcategories
//	@Produce		json
//	@Success		200	{array}	store.Subcategory
//	@Security		ApiKeyAuth
//	@Router			/admin/subcategories [get]
func (app *application) adminListSubcategoriesHandler(w http.ResponseWriter, r *http.Request) {
	subcategories, err := app.store.Subcategories.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, subcategories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createSubcategoryHandler godoc
//
//	@Summary		Creates a subcategory
//	@Description	Creates a subcategory under a category, optionally nested under a parent subcategory of the same category
//	@Tags			admin,subcategories
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SubcategoryPayload	true	"Subcategory fields"
//	@Success		201		{object}	store.Subcategory
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/subcategories [post]
func (app *application) createSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload SubcategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Subcategories.Create(r.Context(), payload.toSubcategory())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrParentNotFound),
			errors.Is(err, store.ErrCategoryMissing),
			errors.Is(err, store.ErrCircularParent):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.refreshStorefrontAsync()

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateSubcategoryHandler godoc
//
//	@Summary		Updates a subcategory
//	@Description	Reparenting is validated: the new parent must exist and must not be the node itself or any of its descendants
//	@Tags			admin,subcategories
//	@Accept			json
//	@Produce		json
//	@Param			subcategoryID	path		string				true	"Subcategory ID"
//	@Param			payload			body		SubcategoryPayload	true	"Subcategory fields"
//	@Success		200				{object}	store.Subcategory
//	@Failure		400				{object}	error
//	@Failure		404				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/subcategories/{subcategoryID} [put]
func (app *application) updateSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload SubcategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Subcategories.Update(r.Context(), chi.URLParam(r, "subcategoryID"), payload.toSubcategory())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrParentNotFound),
			errors.Is(err, store.ErrCategoryMissing),
			errors.Is(err, store.ErrCircularParent):
			app.badRequestResponse(w, r, err)
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

// deleteSubcategoryHandler godoc
//
//	@Summary		Deletes a subcategory
//	@Description	Deletes the subcategory and, through the cascade, its whole subtree
//	@Tags			admin,subcategories
//	@Param			subcategoryID	path	string	true	"Subcategory ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/subcategories/{subcategoryID} [delete]
func (app *application) deleteSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Subcategories.Delete(r.Context(), chi.URLParam(r, "subcategoryID")); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.refreshStorefrontAsync()

	w.WriteHeader(http.StatusNoContent)
}
