package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/store"
)

type BannerPayload struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=500"`
	ImageURL      string `json:"image_url" validate:"required,url"`
	LinkURL       string `json:"link_url" validate:"omitempty,url"`
	Category      string `json:"category" validate:"max=100"`
	ShowTitle     bool   `json:"show_title"`
	ShowShadow    bool   `json:"show_shadow"`
	OrderPosition int    `json:"order_position" validate:"gte=0"`
	IsActive      bool   `json:"is_active"`
}

func (p *BannerPayload) toBanner() *store.Banner {
	return &store.Banner{
		Title:         p.Title,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		LinkURL:       p.LinkURL,
		Category:      p.Category,
		ShowTitle:     p.ShowTitle,
		ShowShadow:    p.ShowShadow,
		OrderPosition: p.OrderPosition,
		IsActive:      p.IsActive,
	}
}

// listBannersHandler godoc
//
//	@Summary		Lists active banners for the storefront carousel
//	@Tags			storefront,banners
//	@Produce		json
//	@Success		200	{array}	store.Banner
//	@Router			/banners [get]
func (app *application) listBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := app.store.Banners.List(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminListBannersHandler godoc
//
//	@Summary		Lists every banner, active or not
//	@Tags			admin,banners
//	@Produce		json
//	@Success		200	{array}	store.Banner
//	@Security		ApiKeyAuth
//	@Router			/admin/banners [get]
func (app *application) adminListBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := app.store.Banners.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createBannerHandler godoc
//
//	@Summary		Creates a banner
//	@Tags			admin,banners
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		BannerPayload	true	"Banner fields"
//	@Success		201		{object}	store.Banner
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/banners [post]
func (app *application) createBannerHandler(w http.ResponseWriter, r *http.Request) {
	var payload BannerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Banners.Create(r.Context(), payload.toBanner())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateBannerHandler godoc
//
//	@Summary		Updates a banner
//	@Tags			admin,banners
//	@Accept			json
//	@Produce		json
//	@Param			bannerID	path		string			true	"Banner ID"
//	@Param			payload		body		BannerPayload	true	"Banner fields"
//	@Success		200			{object}	store.Banner
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/banners/{bannerID} [put]
func (app *application) updateBannerHandler(w http.ResponseWriter, r *http.Request) {
	var payload BannerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Banners.Update(r.Context(), chi.URLParam(r, "bannerID"), payload.toBanner())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteBannerHandler godoc
//
//	@Summary		Deletes a banner
//	@Tags			admin,banners
//	@Param			bannerID	path	string	true	"Banner ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/banners/{bannerID} [delete]
func (app *application) deleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerID")

	banner, err := app.store.Banners.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Banners.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if banner.ImageURL != "" {
		if err := app.deleteImageFromCloudinary(banner.ImageURL); err != nil {
			app.logger.Errorw("failed to delete banner image", "url", banner.ImageURL, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
