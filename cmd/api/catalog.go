package main

import (
	"context"
	"net/http"

	"extreme/internal/catalog"
	"extreme/internal/store"
)

// storeSource adapts the storage layer to the composer's read interface,
// restricting every collection to active records.
type storeSource struct {
	store store.Storage
}

func (app *application) storefrontSource() catalog.Source {
	return &storeSource{store: app.store}
}

func (s *storeSource) ActiveProducts(ctx context.Context) ([]store.Product, error) {
	return s.store.Products.List(ctx)
}

func (s *storeSource) ActiveCategories(ctx context.Context) ([]store.Category, error) {
	return s.store.Categories.List(ctx, true)
}

func (s *storeSource) ActiveSubcategories(ctx context.Context) ([]store.Subcategory, error) {
	return s.store.Subcategories.List(ctx, true)
}

func (s *storeSource) ActivePromotions(ctx context.Context) ([]store.PromotionalSection, error) {
	return s.store.Promotions.List(ctx, true)
}

// getCatalogHandler godoc
//
//	@Summary		Storefront catalog
//	@Description	Returns the composed storefront view: filtered products, categories, subcategories, promotions and derived navigation data
//	@Tags			storefront
//	@Produce		json
//	@Param			search		query		string	false	"Free-text search over name, description, SKU and brand"
//	@Param			category	query		string	false	"Category name, or 'all'"
//	@Param			subcategory	query		string	false	"Subcategory id; overrides category"
//	@Param			brand		query		string	false	"Brand name, or 'all'"
//	@Success		200			{object}	catalog.View
//	@Router			/catalog [get]
func (app *application) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if app.composer.State() != catalog.StateReady {
		if err := app.composer.Refresh(r.Context()); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	q := r.URL.Query()
	criteria := catalog.Criteria{
		SearchTerm:            q.Get("search"),
		SelectedCategory:      q.Get("category"),
		SelectedSubcategoryID: q.Get("subcategory"),
		SelectedBrand:         q.Get("brand"),
	}

	view := app.composer.ComposeWith(criteria)

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}
