package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Products interface {
		List(context.Context) ([]Product, error)
		GetByID(context.Context, string) (*Product, error)
		Create(context.Context, *Product) (*Product, error)
		Update(context.Context, string, *Product) (*Product, error)
		Delete(context.Context, string) error
		Duplicate(context.Context, string) (*Product, error)
	}
	Categories interface {
		List(ctx context.Context, onlyActive bool) ([]Category, error)
		GetByID(context.Context, string) (*Category, error)
		Create(context.Context, *Category) (*Category, error)
		Update(context.Context, string, *Category) (*Category, error)
		Delete(context.Context, string) error
	}
	Subcategories interface {
		List(ctx context.Context, onlyActive bool) ([]Subcategory, error)
		GetByID(context.Context, string) (*Subcategory, error)
		Create(context.Context, *Subcategory) (*Subcategory, error)
		Update(context.Context, string, *Subcategory) (*Subcategory, error)
		Delete(context.Context, string) error
		CountByCategory(ctx context.Context, categoryID string) (int, error)
	}
	Banners interface {
		List(ctx context.Context, onlyActive bool) ([]Banner, error)
		GetByID(context.Context, string) (*Banner, error)
		Create(context.Context, *Banner) (*Banner, error)
		Update(context.Context, string, *Banner) (*Banner, error)
		Delete(context.Context, string) error
	}
	Promotions interface {
		List(ctx context.Context, onlyActive bool) ([]PromotionalSection, error)
		GetByID(context.Context, string) (*PromotionalSection, error)
		Create(context.Context, *PromotionalSection) (*PromotionalSection, error)
		Update(context.Context, string, *PromotionalSection) (*PromotionalSection, error)
		Delete(context.Context, string) error
	}
	Footer interface {
		Get(context.Context) (*FooterSettings, error)
		Update(context.Context, *FooterSettings) (*FooterSettings, error)
	}
	Themes interface {
		List(context.Context) ([]SiteTheme, error)
		GetActive(context.Context) (*SiteTheme, error)
		Create(context.Context, *SiteTheme) (*SiteTheme, error)
		Update(context.Context, string, *SiteTheme) (*SiteTheme, error)
		Activate(ctx context.Context, id string) error
		Delete(context.Context, string) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Products:      &ProductsStore{db},
		Categories:    &CategoriesStore{db},
		Subcategories: &SubcategoriesStore{db},
		Banners:       &BannersStore{db},
		Promotions:    &PromotionsStore{db},
		Footer:        &FooterStore{db},
		Themes:        &ThemesStore{db},
	}
}
