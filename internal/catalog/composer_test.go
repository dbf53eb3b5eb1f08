package catalog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"extreme/internal/store"
)

type fakeSource struct {
	products      []store.Product
	categories    []store.Category
	subcategories []store.Subcategory
	promotions    []store.PromotionalSection

	productsErr error
}

func (f *fakeSource) ActiveProducts(ctx context.Context) ([]store.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeSource) ActiveCategories(ctx context.Context) ([]store.Category, error) {
	return f.categories, nil
}

func (f *fakeSource) ActiveSubcategories(ctx context.Context) ([]store.Subcategory, error) {
	return f.subcategories, nil
}

func (f *fakeSource) ActivePromotions(ctx context.Context) ([]store.PromotionalSection, error) {
	return f.promotions, nil
}

func newTestComposer(t *testing.T, src *fakeSource) *Composer {
	t.Helper()
	c := NewComposer(src, zap.NewNop().Sugar())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return c
}

func storefrontSource() *fakeSource {
	return &fakeSource{
		products: sampleProducts(),
		categories: []store.Category{
			{ID: "informatica", Name: "Informática", IsActive: true},
			{ID: "accesorios", Name: "Accesorios", IsActive: true},
		},
		subcategories: []store.Subcategory{
			sub("laptops", "informatica", "", "Laptops", 1),
			sub("perifericos", "informatica", "", "Periféricos", 2),
		},
		promotions: []store.PromotionalSection{
			{ID: "promo1", Title: "Ofertas", IsActive: true},
		},
	}
}

func TestComposerStateTransitions(t *testing.T) {
	c := NewComposer(storefrontSource(), zap.NewNop().Sugar())
	if c.State() != StateLoading {
		t.Fatal("composer must start loading")
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.State() != StateReady {
		t.Fatal("composer must be ready after refresh")
	}
}

func TestComposerFetchErrorDegradesToEmpty(t *testing.T) {
	src := storefrontSource()
	src.productsErr = errors.New("connection refused")

	c := newTestComposer(t, src)

	view := c.Compose()
	if len(view.Products) != 0 {
		t.Errorf("failed fetch should yield no products, got %d", len(view.Products))
	}
	if len(view.Categories) != 2 {
		t.Errorf("other fetches should still land, got %d categories", len(view.Categories))
	}
	if c.State() != StateReady {
		t.Error("a partial failure still completes the load")
	}
}

func TestComposerCancelledRefreshKeepsPreviousSnapshot(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Refresh(ctx); err == nil {
		t.Fatal("cancelled refresh must report an error")
	}

	if got := len(c.Compose().Products); got != len(sampleProducts()) {
		t.Errorf("previous snapshot lost: %d products", got)
	}
}

func TestComposerSelectCategoryResetsNarrowerSelections(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectSubcategory("perifericos")
	c.SelectBrand("Logitech")
	c.SelectCategory("Accesorios")

	got := c.Criteria()
	if got.SelectedCategory != "Accesorios" {
		t.Errorf("category = %q", got.SelectedCategory)
	}
	if got.SelectedSubcategoryID != "" {
		t.Errorf("subcategory not cleared: %q", got.SelectedSubcategoryID)
	}
	if got.SelectedBrand != AllFilter {
		t.Errorf("brand not reset: %q", got.SelectedBrand)
	}
}

func TestComposerSelectBrandWidensCategoryAndSubcategory(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectSubcategory("perifericos")
	c.SelectBrand("Dell")

	got := c.Criteria()
	if got.SelectedBrand != "Dell" {
		t.Errorf("brand = %q", got.SelectedBrand)
	}
	if got.SelectedCategory != AllFilter {
		t.Errorf("category not widened: %q", got.SelectedCategory)
	}
	if got.SelectedSubcategoryID != "" {
		t.Errorf("subcategory not cleared: %q", got.SelectedSubcategoryID)
	}
}

func TestComposerSelectSubcategoryAlignsOwningCategory(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectCategory("Accesorios")
	c.SelectSubcategory("perifericos")

	got := c.Criteria()
	if got.SelectedSubcategoryID != "perifericos" {
		t.Errorf("subcategory = %q", got.SelectedSubcategoryID)
	}
	if got.SelectedCategory != "Informática" {
		t.Errorf("owning category = %q, want Informática", got.SelectedCategory)
	}
}

func TestComposerSelectUnknownSubcategoryClearsIt(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectSubcategory("inexistente")
	if got := c.Criteria().SelectedSubcategoryID; got != "" {
		t.Errorf("unknown subcategory kept: %q", got)
	}
}

func TestComposerSearchPreservesSelections(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectCategory("Informática")
	c.SetSearchTerm("dell")

	got := c.Criteria()
	if got.SelectedCategory != "Informática" || got.SearchTerm != "dell" {
		t.Errorf("criteria = %+v", got)
	}
	ids := c.Visible()
	assertProductIDs(t, "search within category", ids, []string{"1", "2"})
}

func TestComposerHomeResetsEverything(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectSubcategory("perifericos")
	c.SetSearchTerm("mouse")
	c.Home()

	if got := c.Criteria(); got != NewCriteria() {
		t.Errorf("home left criteria %+v", got)
	}
	if got := len(c.Visible()); got != len(sampleProducts()) {
		t.Errorf("home shows %d products", got)
	}
}

func TestComposeWithDoesNotTouchSharedSelection(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	view := c.ComposeWith(Criteria{SelectedSubcategoryID: "perifericos"})
	if view.Criteria.SelectedCategory != "Informática" {
		t.Errorf("owning category = %q", view.Criteria.SelectedCategory)
	}
	if view.Criteria.SelectedBrand != AllFilter {
		t.Errorf("blank brand should widen to %q, got %q", AllFilter, view.Criteria.SelectedBrand)
	}
	if got := c.Criteria(); got != NewCriteria() {
		t.Errorf("shared selection mutated: %+v", got)
	}

	view = c.ComposeWith(Criteria{SelectedSubcategoryID: "inexistente"})
	if view.Criteria.SelectedSubcategoryID != "" {
		t.Error("unknown subcategory should be dropped")
	}
}

func TestComposerViewDerivedFromUnfilteredSnapshot(t *testing.T) {
	c := newTestComposer(t, storefrontSource())

	c.SelectBrand("Logitech")
	view := c.Compose()

	if len(view.Products) != 1 {
		t.Fatalf("filtered products = %d, want 1", len(view.Products))
	}
	// Counts and brands come from the full snapshot, not the filtered set.
	if view.Counts["Informática"] != 4 {
		t.Errorf("Informática count = %d, want 4", view.Counts["Informática"])
	}
	if len(view.Brands) != 3 {
		t.Errorf("brands = %v, want all three", view.Brands)
	}
	if len(view.Promotions) != 1 {
		t.Errorf("promotions = %d, want 1", len(view.Promotions))
	}
}
