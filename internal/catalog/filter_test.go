package catalog

import (
	"testing"

	"pgregory.net/rapid"

	"extreme/internal/store"
)

func sampleProducts() []store.Product {
	return []store.Product{
		{ID: "1", Name: "Notebook Dell XPS 13", Description: "Ultrabook liviana", Category: "Informática", Brand: "Dell", SKU: "DL-XPS13", Price: 4500000, Stock: 3, SubcategoryID: strPtr("ultrabooks")},
		{ID: "2", Name: "Notebook Dell Inspiron", Description: "Uso general", Category: "Informática", Brand: "Dell", SKU: "DL-INSP", Price: 2800000, Stock: 0, SubcategoryID: strPtr("laptops")},
		{ID: "3", Name: "Mouse inalámbrico", Description: "Mouse compacto", Category: "Informática", Brand: "Logitech", SKU: "LG-M185", Price: 120000, Stock: 25, SubcategoryID: strPtr("perifericos")},
		{ID: "4", Name: "Funda universal", Description: "Funda para notebook 15\"", Category: "Accesorios", Brand: "", Price: 85000, Stock: 10},
		{ID: "5", Name: "Teclado mecánico", Description: "Switches rojos", Category: "Informática", Brand: "Redragon", SKU: "RD-K552", Price: 350000, Stock: 7, SubcategoryID: strPtr("perifericos")},
	}
}

func TestFilterUnfilteredPassesEverything(t *testing.T) {
	products := sampleProducts()
	got := Filter(products, NewCriteria())
	if len(got) != len(products) {
		t.Fatalf("got %d products, want %d", len(got), len(products))
	}
}

func TestFilterSearchMatchesNameDescriptionSKUBrand(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		term string
		want []string
	}{
		{"dell", []string{"1", "2"}},
		{"XPS", []string{"1"}},
		{"liviana", []string{"1"}},
		{"lg-m185", []string{"3"}},
		{"redragon", []string{"5"}},
		{"no existe", nil},
	}
	for _, tc := range cases {
		c := NewCriteria()
		c.SearchTerm = tc.term
		got := Filter(products, c)
		assertProductIDs(t, tc.term, got, tc.want)
	}
}

func TestFilterSubcategoryOverridesCategory(t *testing.T) {
	products := sampleProducts()

	c := NewCriteria()
	c.SelectedCategory = "Accesorios"
	c.SelectedSubcategoryID = "perifericos"

	got := Filter(products, c)
	assertProductIDs(t, "subcategory override", got, []string{"3", "5"})
}

func TestFilterCategoryStage(t *testing.T) {
	products := sampleProducts()

	c := NewCriteria()
	c.SelectedCategory = "Accesorios"
	got := Filter(products, c)
	assertProductIDs(t, "category", got, []string{"4"})
}

func TestFilterBrandStage(t *testing.T) {
	products := sampleProducts()

	c := NewCriteria()
	c.SelectedBrand = "Dell"
	got := Filter(products, c)
	assertProductIDs(t, "brand", got, []string{"1", "2"})
}

func TestFilterStagesCompose(t *testing.T) {
	products := sampleProducts()

	c := NewCriteria()
	c.SearchTerm = "notebook"
	c.SelectedCategory = "Informática"
	c.SelectedBrand = "Dell"
	got := Filter(products, c)
	assertProductIDs(t, "composed", got, []string{"1", "2"})
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := make([]store.Product, len(products))
	copy(before, products)

	c := NewCriteria()
	c.SelectedBrand = "Logitech"
	Filter(products, c)

	for i := range before {
		if products[i].ID != before[i].ID {
			t.Fatalf("input slice mutated at %d", i)
		}
	}
}

// The three stages are independent conjunctions, so any single stage applied
// alone must yield a superset of the fully composed result.
func TestFilterStageIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		products := rapid.SliceOfN(productGen(), 0, 30).Draw(t, "products")

		c := Criteria{
			SearchTerm:       rapid.SampledFrom([]string{"", "dell", "a", "zz"}).Draw(t, "term"),
			SelectedCategory: rapid.SampledFrom([]string{AllFilter, "Informática", "Accesorios"}).Draw(t, "category"),
			SelectedBrand:    rapid.SampledFrom([]string{AllFilter, "Dell", "Logitech"}).Draw(t, "brand"),
		}

		full := Filter(products, c)

		brandOnly := Filter(products, Criteria{SelectedCategory: AllFilter, SelectedBrand: c.SelectedBrand})
		inBrand := map[string]bool{}
		for _, p := range brandOnly {
			inBrand[p.ID] = true
		}
		for _, p := range full {
			if !inBrand[p.ID] {
				t.Fatalf("product %s passed composed filter but not the brand stage alone", p.ID)
			}
		}

		// Re-applying the same criteria is a no-op.
		again := Filter(full, c)
		if len(again) != len(full) {
			t.Fatalf("filter not idempotent: %d then %d", len(full), len(again))
		}
	})
}

func productGen() *rapid.Generator[store.Product] {
	return rapid.Custom(func(t *rapid.T) store.Product {
		return store.Product{
			ID:          rapid.StringMatching(`[a-z0-9]{8}`).Draw(t, "id"),
			Name:        rapid.SampledFrom([]string{"Notebook Dell", "Mouse", "Teclado", "Funda"}).Draw(t, "name"),
			Description: rapid.SampledFrom([]string{"", "liviana", "compacto"}).Draw(t, "description"),
			Category:    rapid.SampledFrom([]string{"Informática", "Accesorios"}).Draw(t, "category"),
			Brand:       rapid.SampledFrom([]string{"", "Dell", "Logitech"}).Draw(t, "brand"),
			Price:       float64(rapid.IntRange(0, 5_000_000).Draw(t, "price")),
			Stock:       rapid.IntRange(0, 50).Draw(t, "stock"),
		}
	})
}

func TestFilterPanelPriceRange(t *testing.T) {
	products := sampleProducts()

	got := FilterPanel(products, PanelCriteria{PriceMin: 100000, PriceMax: 400000})
	assertProductIDs(t, "price range", got, []string{"3", "5"})

	got = FilterPanel(products, PanelCriteria{PriceMin: 3000000})
	assertProductIDs(t, "min only", got, []string{"1"})

	got = FilterPanel(products, PanelCriteria{PriceMax: 100000})
	assertProductIDs(t, "max only", got, []string{"4"})
}

func TestFilterPanelSetsAndStock(t *testing.T) {
	products := sampleProducts()

	got := FilterPanel(products, PanelCriteria{Brands: []string{"Dell", "Redragon"}})
	assertProductIDs(t, "brand set", got, []string{"1", "2", "5"})

	got = FilterPanel(products, PanelCriteria{Categories: []string{"Accesorios"}, OnlyInStock: true})
	assertProductIDs(t, "category+stock", got, []string{"4"})

	got = FilterPanel(products, PanelCriteria{Brands: []string{"Dell"}, OnlyInStock: true})
	assertProductIDs(t, "dell in stock", got, []string{"1"})

	// A brand set that matches nothing yields nothing, never the full list.
	got = FilterPanel(products, PanelCriteria{Brands: []string{"Asus"}})
	assertProductIDs(t, "unmatched brand", got, nil)
}

func TestDeriveBrands(t *testing.T) {
	products := sampleProducts()
	got := DeriveBrands(products)
	want := []string{"Dell", "Logitech", "Redragon"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDeriveCategoryNamesArrivalOrder(t *testing.T) {
	got := DeriveCategoryNames(sampleProducts())
	want := []string{"Informática", "Accesorios"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory(sampleProducts())
	if counts["Informática"] != 4 || counts["Accesorios"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func assertProductIDs(t *testing.T, label string, got []store.Product, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d products, want %d", label, len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("%s: position %d got %s, want %s", label, i, got[i].ID, id)
		}
	}
}
