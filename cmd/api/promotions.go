package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/store"
)

type PromotionPayload struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=500"`
	ImageURL      string `json:"image_url" validate:"required,url"`
	LinkURL       string `json:"link_url" validate:"omitempty,url"`
	Category      string `json:"category" validate:"max=100"`
	Position      string `json:"position" validate:"required,oneof=top middle bottom between_categories"`
	OrderPosition int    `json:"order_position" validate:"gte=0"`
	IsActive      bool   `json:"is_active"`
	SectionType   string `json:"section_type" validate:"required,oneof=full_width half_width grid_2 grid_3"`
}

func (p *PromotionPayload) toPromotion() *store.PromotionalSection {
	return &store.PromotionalSection{
		Title:         p.Title,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		LinkURL:       p.LinkURL,
		Category:      p.Category,
		Position:      p.Position,
		OrderPosition: p.OrderPosition,
		IsActive:      p.IsActive,
		SectionType:   p.SectionType,
	}
}

// adminListPromotionsHandler godoc
//
//	@Summary		Lists every promotional section, active or not
//	@Tags			admin,promotions
//	@Produce		json
//	@Success		200	{array}	store.PromotionalSection
//	@Security		ApiKeyAuth
//	@Router			/admin/promotions [get]
func (app *application) adminListPromotionsHandler(w http.ResponseWriter, r *http.Request) {
	promotions, err := app.store.Promotions.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, promotions); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createPromotionHandler godoc
//
//	@Summary		Creates a promotional section
//	@Tags			admin,promotions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		PromotionPayload	true	"Promotion fields"
//	@Success		201		{object}	store.PromotionalSection
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/promotions [post]
func (app *application) createPromotionHandler(w http.ResponseWriter, r *http.Request) {
	var payload PromotionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Promotions.Create(r.Context(), payload.toPromotion())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.refreshStorefrontAsync()

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updatePromotionHandler godoc
//
//	@Summary		Updates a promotional section
//	@Tags			admin,promotions
//	@Accept			json
//	@Produce		json
//	@Param			promotionID	path		string				true	"Promotion ID"
//	@Param			payload		body		PromotionPayload	true	"Promotion fields"
//	@Success		200			{object}	store.PromotionalSection
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/promotions/{promotionID} [put]
func (app *application) updatePromotionHandler(w http.ResponseWriter, r *http.Request) {
	var payload PromotionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Promotions.Update(r.Context(), chi.URLParam(r, "promotionID"), payload.toPromotion())
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

// deletePromotionHandler godoc
//
//	@Summary		Deletes a promotional section
//	@Tags			admin,promotions
//	@Param			promotionID	path	string	true	"Promotion ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/promotions/{promotionID} [delete]
func (app *application) deletePromotionHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Promotions.Delete(r.Context(), chi.URLParam(r, "promotionID")); err != nil {
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
