package main

import (
	"fmt"
	"net/http"
)

// uploadImageHandler godoc
//
//	@Summary		Uploads an image
//	@Description	Uploads a standalone image (banners, promotions) and returns its URL
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Image file"
//	@Param			kind	formData	string	false	"Asset kind, defaults to 'asset'"
//	@Success		201		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/uploads [post]
func (app *application) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	_, fileHeader, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required"))
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "asset"
	}

	url, err := app.uploadFormImage(fileHeader, "extreme", kind)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, map[string]string{"url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}
