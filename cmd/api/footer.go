package main

import (
	"errors"
	"net/http"

	"extreme/internal/store"
)

type FooterPayload struct {
	CompanyName        string `json:"company_name" validate:"required,max=200"`
	CompanyDescription string `json:"company_description" validate:"max=1000"`
	Address            string `json:"address" validate:"max=300"`
	Phone              string `json:"phone" validate:"max=30"`
	Email              string `json:"email" validate:"omitempty,email"`
	FacebookURL        string `json:"facebook_url" validate:"omitempty,url"`
	InstagramURL       string `json:"instagram_url" validate:"omitempty,url"`
	TwitterURL         string `json:"twitter_url" validate:"omitempty,url"`
	WhatsappNumber     string `json:"whatsapp_number" validate:"omitempty,waphone"`
	CopyrightText      string `json:"copyright_text" validate:"max=300"`
}

// getFooterHandler godoc
//
//	@Summary		Storefront footer settings
//	@Tags			storefront,footer
//	@Produce		json
//	@Success		200	{object}	store.FooterSettings
//	@Router			/footer [get]
func (app *application) getFooterHandler(w http.ResponseWriter, r *http.Request) {
	footer, err := app.store.Footer.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, footer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminGetFooterHandler godoc
//
//	@Summary		Footer settings for editing
//	@Tags			admin,footer
//	@Produce		json
//	@Success		200	{object}	store.FooterSettings
//	@Security		ApiKeyAuth
//	@Router			/admin/footer [get]
func (app *application) adminGetFooterHandler(w http.ResponseWriter, r *http.Request) {
	app.getFooterHandler(w, r)
}

// updateFooterHandler godoc
//
//	@Summary		Updates the footer settings
//	@Description	The footer is a single row: the update always targets the current one
//	@Tags			admin,footer
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		FooterPayload	true	"Footer fields"
//	@Success		200		{object}	store.FooterSettings
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/footer [put]
func (app *application) updateFooterHandler(w http.ResponseWriter, r *http.Request) {
	var payload FooterPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	current, err := app.store.Footer.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	updated, err := app.store.Footer.Update(r.Context(), &store.FooterSettings{
		ID:                 current.ID,
		CompanyName:        payload.CompanyName,
		CompanyDescription: payload.CompanyDescription,
		Address:            payload.Address,
		Phone:              payload.Phone,
		Email:              payload.Email,
		FacebookURL:        payload.FacebookURL,
		InstagramURL:       payload.InstagramURL,
		TwitterURL:         payload.TwitterURL,
		WhatsappNumber:     payload.WhatsappNumber,
		CopyrightText:      payload.CopyrightText,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}
