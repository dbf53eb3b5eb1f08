package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/store"
)

type ThemePayload struct {
	ThemeName              string `json:"theme_name" validate:"required,max=100"`
	PrimaryColor           string `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor         string `json:"secondary_color" validate:"required,hexcolor"`
	AccentColor            string `json:"accent_color" validate:"required,hexcolor"`
	BackgroundGradientFrom string `json:"background_gradient_from" validate:"required,hexcolor"`
	BackgroundGradientTo   string `json:"background_gradient_to" validate:"required,hexcolor"`
	HeaderBackground       string `json:"header_background" validate:"required,hexcolor"`
	ButtonGradientFrom     string `json:"button_gradient_from" validate:"required,hexcolor"`
	ButtonGradientTo       string `json:"button_gradient_to" validate:"required,hexcolor"`
	CustomCSS              string `json:"custom_css" validate:"max=10000"`
}

func (p *ThemePayload) toTheme() *store.SiteTheme {
	return &store.SiteTheme{
		ThemeName:              p.ThemeName,
		PrimaryColor:           p.PrimaryColor,
		SecondaryColor:         p.SecondaryColor,
		AccentColor:            p.AccentColor,
		BackgroundGradientFrom: p.BackgroundGradientFrom,
		BackgroundGradientTo:   p.BackgroundGradientTo,
		HeaderBackground:       p.HeaderBackground,
		ButtonGradientFrom:     p.ButtonGradientFrom,
		ButtonGradientTo:       p.ButtonGradientTo,
		CustomCSS:              p.CustomCSS,
	}
}

// getActiveThemeHandler godoc
//
//	@Summary		The active storefront theme
//	@Tags			storefront,themes
//	@Produce		json
//	@Success		200	{object}	store.SiteTheme
//	@Failure		404	{object}	error
//	@Router			/theme [get]
func (app *application) getActiveThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme, err := app.store.Themes.GetActive(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, theme); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listThemesHandler godoc
//
//	@Summary		Lists every saved theme
//	@Tags			admin,themes
//	@Produce		json
//	@Success		200	{array}	store.SiteTheme
//	@Security		ApiKeyAuth
//	@Router			/admin/themes [get]
func (app *application) listThemesHandler(w http.ResponseWriter, r *http.Request) {
	themes, err := app.store.Themes.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, themes); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createThemeHandler godoc
//
//	@Summary		Creates a theme
//	@Description	New themes are saved inactive; activate them explicitly
//	@Tags			admin,themes
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ThemePayload	true	"Theme fields"
//	@Success		201		{object}	store.SiteTheme
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/themes [post]
func (app *application) createThemeHandler(w http.ResponseWriter, r *http.Request) {
	var payload ThemePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Themes.Create(r.Context(), payload.toTheme())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateThemeHandler godoc
//
//	@Summary		Updates a theme
//	@Tags			admin,themes
//	@Accept			json
//	@Produce		json
//	@Param			themeID	path		string			true	"Theme ID"
//	@Param			payload	body		ThemePayload	true	"Theme fields"
//	@Success		200		{object}	store.SiteTheme
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/themes/{themeID} [put]
func (app *application) updateThemeHandler(w http.ResponseWriter, r *http.Request) {
	var payload ThemePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Themes.Update(r.Context(), chi.URLParam(r, "themeID"), payload.toTheme())
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

// activateThemeHandler godoc
//
//	@Summary		Activates a theme
//	@Description	Exactly one theme is active at a time; activating one deactivates the rest atomically
//	@Tags			admin,themes
//	@Produce		json
//	@Param			themeID	path		string	true	"Theme ID"
//	@Success		200		{object}	store.SiteTheme
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/themes/{themeID}/activate [post]
func (app *application) activateThemeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "themeID")

	if err := app.store.Themes.Activate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	theme, err := app.store.Themes.GetActive(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, theme); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteThemeHandler godoc
//
//	@Summary		Deletes a theme
//	@Tags			admin,themes
//	@Param			themeID	path	string	true	"Theme ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/themes/{themeID} [delete]
func (app *application) deleteThemeHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Themes.Delete(r.Context(), chi.URLParam(r, "themeID")); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
