package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"extreme/internal/store"
)

// State reports whether the composer has loaded its first snapshot.
type State int

const (
	StateLoading State = iota
	StateReady
)

// Source supplies the storefront's active records. Each accessor is fetched
// independently; a failing accessor degrades to an empty slice rather than
// failing the whole page.
type Source interface {
	ActiveProducts(ctx context.Context) ([]store.Product, error)
	ActiveCategories(ctx context.Context) ([]store.Category, error)
	ActiveSubcategories(ctx context.Context) ([]store.Subcategory, error)
	ActivePromotions(ctx context.Context) ([]store.PromotionalSection, error)
}

// Composer assembles the storefront read model: the loaded snapshot, the
// current filter selection, and the values derived from both. Safe for
// concurrent use.
type Composer struct {
	source Source
	logger *zap.SugaredLogger

	mu            sync.RWMutex
	state         State
	products      []store.Product
	categories    []store.Category
	subcategories []store.Subcategory
	promotions    []store.PromotionalSection
	criteria      Criteria
}

func NewComposer(source Source, logger *zap.SugaredLogger) *Composer {
	return &Composer{
		source:   source,
		logger:   logger,
		criteria: NewCriteria(),
	}
}

// Refresh fetches a fresh snapshot from the source. The four fetches run
// concurrently; an individual failure is logged and that slice comes back
// empty. If the context is cancelled before all fetches return, the stale
// in-flight snapshot is discarded and the previous one stays in place.
func (c *Composer) Refresh(ctx context.Context) error {
	var (
		products      []store.Product
		categories    []store.Category
		subcategories []store.Subcategory
		promotions    []store.PromotionalSection
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if products, err = c.source.ActiveProducts(ctx); err != nil {
			c.logger.Errorw("fetch products", "error", err)
			products = nil
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		if categories, err = c.source.ActiveCategories(ctx); err != nil {
			c.logger.Errorw("fetch categories", "error", err)
			categories = nil
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		if subcategories, err = c.source.ActiveSubcategories(ctx); err != nil {
			c.logger.Errorw("fetch subcategories", "error", err)
			subcategories = nil
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		if promotions, err = c.source.ActivePromotions(ctx); err != nil {
			c.logger.Errorw("fetch promotions", "error", err)
			promotions = nil
		}
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	c.products = products
	c.categories = categories
	c.subcategories = subcategories
	c.promotions = promotions
	c.state = StateReady
	c.mu.Unlock()

	return nil
}

func (c *Composer) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Composer) Criteria() Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteria
}

// SelectCategory picks a category section and clears any narrower selection.
func (c *Composer) SelectCategory(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria.SelectedCategory = name
	c.criteria.SelectedSubcategoryID = ""
	c.criteria.SelectedBrand = AllFilter
}

// SelectSubcategory picks a subcategory and aligns the owning category so the
// breadcrumb stays consistent. An unknown id clears the subcategory filter.
func (c *Composer) SelectSubcategory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria.SelectedSubcategoryID = id
	c.criteria.SelectedBrand = AllFilter
	if id == "" {
		return
	}
	for _, sub := range c.subcategories {
		if sub.ID != id {
			continue
		}
		for _, cat := range c.categories {
			if cat.ID == sub.CategoryID {
				c.criteria.SelectedCategory = cat.Name
				return
			}
		}
		return
	}
	c.criteria.SelectedSubcategoryID = ""
}

// SelectBrand picks a brand across the whole catalog, widening category and
// subcategory back out.
func (c *Composer) SelectBrand(brand string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria.SelectedBrand = brand
	c.criteria.SelectedCategory = AllFilter
	c.criteria.SelectedSubcategoryID = ""
}

// SetSearchTerm updates the free-text filter without touching selections.
func (c *Composer) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria.SearchTerm = term
}

// Home resets every selection back to the landing state.
func (c *Composer) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria = NewCriteria()
}

// Visible returns the product set under the current criteria.
func (c *Composer) Visible() []store.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.products, c.criteria)
}

// View is the composed storefront payload.
type View struct {
	State         State                      `json:"state"`
	Criteria      Criteria                   `json:"criteria"`
	Products      []store.Product            `json:"products"`
	Categories    []store.Category           `json:"categories"`
	Subcategories []store.Subcategory        `json:"subcategories"`
	Promotions    []store.PromotionalSection `json:"promotions"`
	CategoryNames []string                   `json:"category_names"`
	Counts        map[string]int             `json:"counts"`
	Brands        []string                   `json:"brands"`

	// PromotionsByPosition buckets the active promotions by their page slot
	// (top, middle, bottom, between_categories), ordered within each slot.
	PromotionsByPosition map[string][]store.PromotionalSection `json:"promotions_by_position"`
}

// Compose builds the full storefront view: the filtered products plus the
// navigation aids derived from the unfiltered snapshot, so category counts
// and the brand list stay stable while the visitor narrows down.
func (c *Composer) Compose() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.composeLocked(c.criteria)
}

// ComposeWith renders a view for the given criteria without touching the
// composer's own selection, so stateless HTTP requests can share one
// snapshot. The criteria are normalized the same way the selection methods
// normalize them: blank selections widen to "all", and a subcategory pick
// aligns its owning category (or is dropped when unknown).
func (c *Composer) ComposeWith(criteria Criteria) View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.composeLocked(c.normalizeLocked(criteria))
}

func (c *Composer) composeLocked(criteria Criteria) View {
	return View{
		State:         c.state,
		Criteria:      criteria,
		Products:      Filter(c.products, criteria),
		Categories:    c.categories,
		Subcategories: c.subcategories,
		Promotions:    c.promotions,
		CategoryNames: DeriveCategoryNames(c.products),
		Counts:        CountByCategory(c.products),
		Brands:        DeriveBrands(c.products),

		PromotionsByPosition: groupPromotions(c.promotions),
	}
}

func groupPromotions(promotions []store.PromotionalSection) map[string][]store.PromotionalSection {
	grouped := map[string][]store.PromotionalSection{}
	for _, p := range promotions {
		grouped[p.Position] = append(grouped[p.Position], p)
	}
	for _, slot := range grouped {
		sort.SliceStable(slot, func(i, j int) bool {
			return slot[i].OrderPosition < slot[j].OrderPosition
		})
	}
	return grouped
}

func (c *Composer) normalizeLocked(criteria Criteria) Criteria {
	if criteria.SelectedCategory == "" {
		criteria.SelectedCategory = AllFilter
	}
	if criteria.SelectedBrand == "" {
		criteria.SelectedBrand = AllFilter
	}
	if criteria.SelectedSubcategoryID == "" {
		return criteria
	}
	for _, sub := range c.subcategories {
		if sub.ID != criteria.SelectedSubcategoryID {
			continue
		}
		for _, cat := range c.categories {
			if cat.ID == sub.CategoryID {
				criteria.SelectedCategory = cat.Name
			}
		}
		return criteria
	}
	criteria.SelectedSubcategoryID = ""
	return criteria
}
