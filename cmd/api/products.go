package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"extreme/internal/store"
)

type ProductPayload struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=2000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
	Category      string  `json:"category" validate:"required,max=100"`
	Stock         int     `json:"stock" validate:"gte=0"`
	SubcategoryID *string `json:"subcategory_id" validate:"omitempty,uuid"`
	SKU           string  `json:"sku" validate:"max=60"`
	Brand         string  `json:"brand" validate:"max=100"`
	Dimensions    string  `json:"dimensions" validate:"max=200"`
	Compatibility string  `json:"compatibility" validate:"max=500"`
}

func (p *ProductPayload) toProduct() *store.Product {
	return &store.Product{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		Stock:         p.Stock,
		SubcategoryID: p.SubcategoryID,
		SKU:           p.SKU,
		Brand:         p.Brand,
		Dimensions:    p.Dimensions,
		Compatibility: p.Compatibility,
	}
}

// adminListProductsHandler godoc
//
//	@Summary		Lists every product
//	@Tags			admin,products
//	@Produce		json
//	@Success		200	{array}	store.Product
//	@Security		ApiKeyAuth
//	@Router			/admin/products [get]
func (app *application) adminListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.Products.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary		Fetches a product
//	@Tags			storefront,products
//	@Produce		json
//	@Param			productID	path		string	true	"Product ID"
//	@Success		200			{object}	store.Product
//	@Failure		404			{object}	error
//	@Router			/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := app.store.Products.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createProductHandler godoc
//
//	@Summary		Creates a product
//	@Description	Accepts multipart form data with the product fields and an optional image file
//	@Tags			admin,products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201	{object}	store.Product
//	@Failure		400	{object}	error
//	@Failure		409	{object}	error	"Duplicate SKU"
//	@Security		ApiKeyAuth
//	@Router			/admin/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	payload, err := productPayloadFromForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The image can come as a file or as an already-uploaded URL.
	if _, fileHeader, err := r.FormFile("image"); err == nil {
		url, err := app.uploadFormImage(fileHeader, "products", "product")
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		payload.ImageURL = url
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Products.Create(r.Context(), payload.toProduct())
	if err != nil {
		// Do not leave the uploaded image orphaned.
		if payload.ImageURL != "" {
			if delErr := app.deleteImageFromCloudinary(payload.ImageURL); delErr != nil {
				app.logger.Errorw("failed to clean up uploaded image", "url", payload.ImageURL, "error", delErr)
			}
		}
		switch {
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("product with SKU '%s' already exists", payload.SKU))
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

// updateProductHandler godoc
//
//	@Summary		Updates a product
//	@Tags			admin,products
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		string			true	"Product ID"
//	@Param			payload		body		ProductPayload	true	"Product fields"
//	@Success		200			{object}	store.Product
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error	"Duplicate SKU"
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload ProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Products.Update(r.Context(), chi.URLParam(r, "productID"), payload.toProduct())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("product with SKU '%s' already exists", payload.SKU))
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

// deleteProductHandler godoc
//
//	@Summary		Deletes a product
//	@Tags			admin,products
//	@Param			productID	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	product, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Products.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if product.ImageURL != "" {
		if err := app.deleteImageFromCloudinary(product.ImageURL); err != nil {
			app.logger.Errorw("failed to delete product image", "url", product.ImageURL, "error", err)
		}
	}

	app.logger.Infow("product deleted", "id", id, "name", product.Name, "admin", getAdminFromContext(r))
	app.refreshStorefrontAsync()

	w.WriteHeader(http.StatusNoContent)
}

// duplicateProductHandler godoc
//
//	@Summary		Duplicates a product
//	@Description	Creates a copy of the product with "(Copia)" appended to its name and "-COPY" to its SKU
//	@Tags			admin,products
//	@Produce		json
//	@Param			productID	path		string	true	"Product ID"
//	@Success		201			{object}	store.Product
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID}/duplicate [post]
func (app *application) duplicateProductHandler(w http.ResponseWriter, r *http.Request) {
	copied, err := app.store.Products.Duplicate(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, errors.New("a copy with the same SKU already exists"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.refreshStorefrontAsync()

	if err := app.jsonResponse(w, http.StatusCreated, copied); err != nil {
		app.internalServerError(w, r, err)
	}
}

func productPayloadFromForm(r *http.Request) (*ProductPayload, error) {
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	stock := 0
	if v := r.FormValue("stock"); v != "" {
		stock, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid stock: %w", err)
		}
	}

	payload := &ProductPayload{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         price,
		ImageURL:      r.FormValue("image_url"),
		Category:      r.FormValue("category"),
		Stock:         stock,
		SKU:           r.FormValue("sku"),
		Brand:         r.FormValue("brand"),
		Dimensions:    r.FormValue("dimensions"),
		Compatibility: r.FormValue("compatibility"),
	}
	if v := r.FormValue("subcategory_id"); v != "" {
		payload.SubcategoryID = &v
	}
	return payload, nil
}
