package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"extreme/internal/catalog"
	"extreme/internal/store"
)

// fakeProductsStore backs the composer with an in-memory slice so handler
// tests can mutate it and watch the snapshot follow.
type fakeProductsStore struct {
	mu       sync.Mutex
	products []store.Product
}

func (f *fakeProductsStore) List(ctx context.Context) ([]store.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductsStore) GetByID(ctx context.Context, id string) (*store.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) Create(ctx context.Context, p *store.Product) (*store.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = append(f.products, *p)
	return p, nil
}

func (f *fakeProductsStore) Update(ctx context.Context, id string, p *store.Product) (*store.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			updated := *p
			updated.ID = id
			f.products[i] = updated
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeProductsStore) Duplicate(ctx context.Context, id string) (*store.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			copied := p
			copied.ID = id + "-copy"
			copied.Name = p.Name + " (Copia)"
			f.products = append(f.products, copied)
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeCategoriesStore struct{}

func (fakeCategoriesStore) List(ctx context.Context, onlyActive bool) ([]store.Category, error) {
	return nil, nil
}
func (fakeCategoriesStore) GetByID(ctx context.Context, id string) (*store.Category, error) {
	return nil, store.ErrNotFound
}
func (fakeCategoriesStore) Create(ctx context.Context, c *store.Category) (*store.Category, error) {
	return c, nil
}
func (fakeCategoriesStore) Update(ctx context.Context, id string, c *store.Category) (*store.Category, error) {
	return c, nil
}
func (fakeCategoriesStore) Delete(ctx context.Context, id string) error { return nil }

type fakeSubcategoriesStore struct{}

func (fakeSubcategoriesStore) List(ctx context.Context, onlyActive bool) ([]store.Subcategory, error) {
	return nil, nil
}
func (fakeSubcategoriesStore) GetByID(ctx context.Context, id string) (*store.Subcategory, error) {
	return nil, store.ErrNotFound
}
func (fakeSubcategoriesStore) Create(ctx context.Context, sc *store.Subcategory) (*store.Subcategory, error) {
	return sc, nil
}
func (fakeSubcategoriesStore) Update(ctx context.Context, id string, sc *store.Subcategory) (*store.Subcategory, error) {
	return sc, nil
}
func (fakeSubcategoriesStore) Delete(ctx context.Context, id string) error { return nil }
func (fakeSubcategoriesStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	return 0, nil
}

type fakePromotionsStore struct{}

func (fakePromotionsStore) List(ctx context.Context, onlyActive bool) ([]store.PromotionalSection, error) {
	return nil, nil
}
func (fakePromotionsStore) GetByID(ctx context.Context, id string) (*store.PromotionalSection, error) {
	return nil, store.ErrNotFound
}
func (fakePromotionsStore) Create(ctx context.Context, p *store.PromotionalSection) (*store.PromotionalSection, error) {
	return p, nil
}
func (fakePromotionsStore) Update(ctx context.Context, id string, p *store.PromotionalSection) (*store.PromotionalSection, error) {
	return p, nil
}
func (fakePromotionsStore) Delete(ctx context.Context, id string) error { return nil }

func newCatalogTestApp(products []store.Product) *application {
	app := &application{
		logger: zap.NewNop().Sugar(),
		store: store.Storage{
			Products:      &fakeProductsStore{products: products},
			Categories:    fakeCategoriesStore{},
			Subcategories: fakeSubcategoriesStore{},
			Promotions:    fakePromotionsStore{},
		},
	}
	app.composer = catalog.NewComposer(app.storefrontSource(), app.logger)
	return app
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDeleteProductRefreshesStorefrontSnapshot(t *testing.T) {
	app := newCatalogTestApp([]store.Product{
		{ID: "p1", Name: "Notebook Dell XPS 13", Category: "Informática", Price: 4500000, Stock: 3},
		{ID: "p2", Name: "Mouse inalámbrico", Category: "Accesorios", Price: 120000, Stock: 10},
	})

	if err := app.composer.Refresh(context.Background()); err != nil {
		t.Fatalf("warm refresh: %v", err)
	}
	if got := len(app.composer.ComposeWith(catalog.NewCriteria()).Products); got != 2 {
		t.Fatalf("warm snapshot has %d products, want 2", got)
	}

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/v1/admin/products/p1", nil), "productID", "p1")
	w := httptest.NewRecorder()
	app.deleteProductHandler(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}

	// The handler kicks the refresh in the background; the snapshot must drop
	// the product well before the periodic ticker would.
	deadline := time.Now().Add(2 * time.Second)
	for {
		view := app.composer.ComposeWith(catalog.NewCriteria())
		if len(view.Products) == 1 && view.Products[0].ID == "p2" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot still serves %d products after delete", len(view.Products))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDuplicateProductRefreshesStorefrontSnapshot(t *testing.T) {
	app := newCatalogTestApp([]store.Product{
		{ID: "p1", Name: "Teclado mecánico", Category: "Accesorios", Price: 350000, Stock: 5},
	})

	if err := app.composer.Refresh(context.Background()); err != nil {
		t.Fatalf("warm refresh: %v", err)
	}

	r := withURLParam(httptest.NewRequest(http.MethodPost, "/v1/admin/products/p1/duplicate", nil), "productID", "p1")
	w := httptest.NewRecorder()
	app.duplicateProductHandler(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d, want 201", w.Code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		view := app.composer.ComposeWith(catalog.NewCriteria())
		if len(view.Products) == 2 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot still serves %d products after duplicate", len(view.Products))
		}
		time.Sleep(10 * time.Millisecond)
	}
}
