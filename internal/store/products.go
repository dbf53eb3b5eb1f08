package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Product keeps the denormalized category name (not a foreign key); renaming a
// category does not cascade to existing rows.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	Stock         int       `json:"stock"`
	SubcategoryID *string   `json:"subcategory_id,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Dimensions    string    `json:"dimensions,omitempty"`
	Compatibility string    `json:"compatibility,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProductsStore struct {
	db *pgxpool.Pool
}

const productColumns = `id, name, description, price, image_url, category, stock,
	subcategory_id, COALESCE(sku, ''), COALESCE(brand, ''),
	COALESCE(dimensions, ''), COALESCE(compatibility, ''), created_at, updated_at`

// isUniqueViolation reports whether err is a Postgres duplicate-key error,
// which for products means the SKU is already taken.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.Stock, &p.SubcategoryID, &p.SKU, &p.Brand,
		&p.Dimensions, &p.Compatibility, &p.CreatedAt, &p.UpdatedAt)
}

// List returns every product, newest first, matching the storefront ordering.
func (s *ProductsStore) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return products, nil
}

func (s *ProductsStore) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Product{}
	err := scanProduct(s.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1;
	`, id), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *ProductsStore) Create(ctx context.Context, p *Product) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	created := &Product{}
	err := scanProduct(s.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image_url, category, stock,
			subcategory_id, sku, brand, dimensions, compatibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''))
		RETURNING `+productColumns+`;
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock,
		p.SubcategoryID, p.SKU, p.Brand, p.Dimensions, p.Compatibility), created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (s *ProductsStore) Update(ctx context.Context, id string, p *Product) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &Product{}
	err := scanProduct(s.db.QueryRow(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, category = $5,
			stock = $6, subcategory_id = $7, sku = NULLIF($8, ''), brand = NULLIF($9, ''),
			dimensions = NULLIF($10, ''), compatibility = NULLIF($11, ''), updated_at = now()
		WHERE id = $12
		RETURNING `+productColumns+`;
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock,
		p.SubcategoryID, p.SKU, p.Brand, p.Dimensions, p.Compatibility, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *ProductsStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Duplicate inserts a copy of the product with "(Copia)" appended to its name
// and "-COPY" appended to its SKU. NULL || text stays NULL, so SKU-less
// products copy cleanly.
func (s *ProductsStore) Duplicate(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	copied := &Product{}
	err := scanProduct(s.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image_url, category, stock,
			subcategory_id, sku, brand, dimensions, compatibility)
		SELECT name || ' (Copia)', description, price, image_url, category, stock,
			subcategory_id, sku || '-COPY', brand, dimensions, compatibility
		FROM products
		WHERE id = $1
		RETURNING `+productColumns+`;
	`, id), copied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("duplicate product: %w", err)
	}
	return copied, nil
}
