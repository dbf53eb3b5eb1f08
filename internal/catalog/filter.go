package catalog

import (
	"sort"
	"strings"

	"extreme/internal/store"
)

// AllFilter is the sentinel meaning "no selection" for category and brand.
const AllFilter = "all"

// Criteria is the storefront filter state. Zero values (empty search, "all"
// selections) disable the corresponding stage.
type Criteria struct {
	SearchTerm            string `json:"search_term"`
	SelectedCategory      string `json:"selected_category"`
	SelectedSubcategoryID string `json:"selected_subcategory_id"`
	SelectedBrand         string `json:"selected_brand"`
}

// NewCriteria returns the unfiltered state.
func NewCriteria() Criteria {
	return Criteria{SelectedCategory: AllFilter, SelectedBrand: AllFilter}
}

// PanelCriteria is the admin filter panel variant: multi-select category and
// brand sets (OR within each set), an inclusive price range, and a stock flag.
type PanelCriteria struct {
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	PriceMin    float64  `json:"price_min"`
	PriceMax    float64  `json:"price_max"`
	OnlyInStock bool     `json:"only_in_stock"`
}

// Filter narrows products through the criteria stages in order: search, then
// subcategory-or-category, then brand. Each stage feeds the next; the stages
// are independent conjunctions, so the composed result does not depend on
// their order. The input slice is never mutated.
func Filter(products []store.Product, c Criteria) []store.Product {
	filtered := make([]store.Product, len(products))
	copy(filtered, products)

	if c.SearchTerm != "" {
		term := strings.ToLower(c.SearchTerm)
		filtered = keep(filtered, func(p store.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term) ||
				(p.SKU != "" && strings.Contains(strings.ToLower(p.SKU), term)) ||
				(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), term))
		})
	}

	if c.SelectedSubcategoryID != "" {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.SubcategoryID != nil && *p.SubcategoryID == c.SelectedSubcategoryID
		})
	} else if c.SelectedCategory != "" && c.SelectedCategory != AllFilter {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Category == c.SelectedCategory
		})
	}

	if c.SelectedBrand != "" && c.SelectedBrand != AllFilter {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Brand == c.SelectedBrand
		})
	}

	return filtered
}

// FilterPanel applies the admin panel criteria. The price range applies only
// when a bound is set; a selected brand or category set that matches nothing
// yields an empty result, never a fallback to the unfiltered set.
func FilterPanel(products []store.Product, c PanelCriteria) []store.Product {
	filtered := make([]store.Product, len(products))
	copy(filtered, products)

	if len(c.Categories) > 0 {
		want := toSet(c.Categories)
		filtered = keep(filtered, func(p store.Product) bool {
			return want[p.Category]
		})
	}

	if len(c.Brands) > 0 {
		want := toSet(c.Brands)
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Brand != "" && want[p.Brand]
		})
	}

	if c.PriceMin > 0 {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Price >= c.PriceMin
		})
	}

	if c.PriceMax > 0 {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Price <= c.PriceMax
		})
	}

	if c.OnlyInStock {
		filtered = keep(filtered, func(p store.Product) bool {
			return p.Stock > 0
		})
	}

	return filtered
}

// DeriveBrands returns the distinct non-blank brands of the product set,
// case-sensitive, sorted lexicographically.
func DeriveBrands(products []store.Product) []string {
	seen := map[string]bool{}
	var brands []string
	for _, p := range products {
		b := strings.TrimSpace(p.Brand)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}

// DeriveCategoryNames returns the distinct denormalized category names in
// product arrival order, matching the storefront's section ordering.
func DeriveCategoryNames(products []store.Product) []string {
	seen := map[string]bool{}
	var names []string
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		names = append(names, p.Category)
	}
	return names
}

// CountByCategory tallies products per denormalized category name.
func CountByCategory(products []store.Product) map[string]int {
	counts := map[string]int{}
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

func keep(products []store.Product, pred func(store.Product) bool) []store.Product {
	out := products[:0:0]
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
