package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extreme/internal/currency"
	"extreme/internal/store"
	"extreme/internal/whatsapp"
)

type CheckoutPayload struct {
	Items []CheckoutItem `json:"items" validate:"required,min=1,max=50,dive"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
}

type CheckoutResponse struct {
	Reference string  `json:"reference"`
	Total     float64 `json:"total"`
	TotalText string  `json:"total_text"`
	Link      string  `json:"link"`
}

// checkoutHandler godoc
//
//	@Summary		Builds the WhatsApp checkout link
//	@Description	Resolves the cart against current prices, mints an order reference and returns the wa.me link carrying the full order message
//	@Tags			storefront,checkout
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CheckoutPayload	true	"Cart items"
//	@Success		200		{object}	CheckoutResponse
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var payload CheckoutPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := make([]whatsapp.CartItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		product, err := app.store.Products.GetByID(r.Context(), line.ProductID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				app.notFoundResponse(w, r, fmt.Errorf("product %s: %w", line.ProductID, err))
			default:
				app.internalServerError(w, r, err)
			}
			return
		}
		items = append(items, whatsapp.CartItem{Product: *product, Quantity: line.Quantity})
	}

	reference, err := app.references.Generate()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	total := whatsapp.CartTotal(items)
	resp := CheckoutResponse{
		Reference: reference,
		Total:     total,
		TotalText: currency.FormatPrice(total),
		Link:      app.links.CheckoutLink(items, reference),
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type InquiryResponse struct {
	Link string `json:"link"`
}

// getProductInquiryHandler godoc
//
//	@Summary		Builds the WhatsApp inquiry link for a product
//	@Tags			storefront,products
//	@Produce		json
//	@Param			productID	path		string	true	"Product ID"
//	@Success		200			{object}	InquiryResponse
//	@Failure		404			{object}	error
//	@Router			/products/{productID}/inquiry [get]
func (app *application) getProductInquiryHandler(w http.ResponseWriter, r *http.Request) {
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

	resp := InquiryResponse{Link: app.links.InquiryLink(*product)}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
