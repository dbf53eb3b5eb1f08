package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Icon          string    `json:"icon"`
	OrderPosition int       `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CategoriesStore struct {
	db *pgxpool.Pool
}

const categoryColumns = `id, name, COALESCE(description, ''), icon, order_position, is_active, created_at, updated_at`

func scanCategory(row pgx.Row, c *Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.OrderPosition,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

// List returns categories ordered by order_position ascending, ties in
// insertion order.
func (s *CategoriesStore) List(ctx context.Context, onlyActive bool) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE is_active = true OR $1 = false
		ORDER BY order_position ASC, created_at ASC;
	`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return categories, nil
}

func (s *CategoriesStore) GetByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := &Category{}
	err := scanCategory(s.db.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1;
	`, id), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoriesStore) Create(ctx context.Context, c *Category) (*Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	created := &Category{}
	err := scanCategory(s.db.QueryRow(ctx, `
		INSERT INTO categories (name, description, icon, order_position, is_active)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING `+categoryColumns+`;
	`, c.Name, c.Description, c.Icon, c.OrderPosition, c.IsActive), created)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *CategoriesStore) Update(ctx context.Context, id string, c *Category) (*Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &Category{}
	err := scanCategory(s.db.QueryRow(ctx, `
		UPDATE categories
		SET name = $1, description = NULLIF($2, ''), icon = $3, order_position = $4,
			is_active = $5, updated_at = now()
		WHERE id = $6
		RETURNING `+categoryColumns+`;
	`, c.Name, c.Description, c.Icon, c.OrderPosition, c.IsActive, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes the category; the subcategories under it go with it through
// the schema's ON DELETE CASCADE, never through client-side fan-out.
func (s *CategoriesStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
