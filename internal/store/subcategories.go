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

var (
	ErrParentNotFound  = errors.New("parent subcategory not found")
	ErrCircularParent  = errors.New("subcategory cannot be its own ancestor")
	ErrCategoryMissing = errors.New("subcategory category not found")
)

// maxTreeDepth bounds the ancestor walk so a corrupted parent chain cannot
// spin the cycle check forever.
const maxTreeDepth = 64

// Subcategory is a node in a per-category forest. ParentID == nil marks a root
// of its category; Level caches the depth and is recomputed on every write.
type Subcategory struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	ParentID      *string   `json:"parent_id,omitempty"`
	Name          string    `json:"name"`
	OrderPosition int       `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	Level         int       `json:"level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SubcategoriesStore struct {
	db *pgxpool.Pool
}

const subcategoryColumns = `id, category_id, parent_id, name, order_position, is_active, level, created_at, updated_at`

func scanSubcategory(row pgx.Row, sc *Subcategory) error {
	return row.Scan(&sc.ID, &sc.CategoryID, &sc.ParentID, &sc.Name,
		&sc.OrderPosition, &sc.IsActive, &sc.Level, &sc.CreatedAt, &sc.UpdatedAt)
}

func (s *SubcategoriesStore) List(ctx context.Context, onlyActive bool) ([]Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		WHERE is_active = true OR $1 = false
		ORDER BY order_position ASC, created_at ASC;
	`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []Subcategory
	for rows.Next() {
		var sc Subcategory
		if err := scanSubcategory(rows, &sc); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return subcategories, nil
}

func (s *SubcategoriesStore) GetByID(ctx context.Context, id string) (*Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.getByID(ctx, id)
}

func (s *SubcategoriesStore) getByID(ctx context.Context, id string) (*Subcategory, error) {
	sc := &Subcategory{}
	err := scanSubcategory(s.db.QueryRow(ctx, `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		WHERE id = $1;
	`, id), sc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return sc, nil
}

// resolveParent loads the parent and derives the child's category and level
// from it. The chosen parent always wins over whatever category_id the caller
// sent, which keeps parent and child in the same category.
func (s *SubcategoriesStore) resolveParent(ctx context.Context, sc *Subcategory) (*Subcategory, error) {
	if sc.ParentID == nil {
		sc.Level = 0
		return nil, nil
	}
	parent, err := s.getByID(ctx, *sc.ParentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	sc.CategoryID = parent.CategoryID
	sc.Level = parent.Level + 1
	return parent, nil
}

// subcategoryGetter loads a node by id. The cycle walk takes one so it can
// run against the database or an in-memory forest.
type subcategoryGetter func(ctx context.Context, id string) (*Subcategory, error)

// walkAncestors walks up from the prospective parent and rejects the chain if
// the node being edited appears among its ancestors or the chain runs past
// maxTreeDepth.
func walkAncestors(ctx context.Context, get subcategoryGetter, id string, parent *Subcategory) error {
	seen := map[string]bool{id: true}
	for depth := 0; parent != nil; depth++ {
		if depth > maxTreeDepth || seen[parent.ID] {
			return ErrCircularParent
		}
		seen[parent.ID] = true
		if parent.ParentID == nil {
			return nil
		}
		next, err := get(ctx, *parent.ParentID)
		if err != nil {
			return fmt.Errorf("walk ancestors: %w", err)
		}
		parent = next
	}
	return nil
}

// assertAcyclic rejects the write if the node being edited appears in the
// ancestor chain of its prospective parent.
func (s *SubcategoriesStore) assertAcyclic(ctx context.Context, id string, parent *Subcategory) error {
	return walkAncestors(ctx, s.getByID, id, parent)
}

func (s *SubcategoriesStore) assertCategoryExists(ctx context.Context, categoryID string) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1);`,
		categoryID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return ErrCategoryMissing
	}
	return nil
}

func (s *SubcategoriesStore) Create(ctx context.Context, sc *Subcategory) (*Subcategory, error) {
	if strings.TrimSpace(sc.Name) == "" {
		return nil, fmt.Errorf("subcategory name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.resolveParent(ctx, sc); err != nil {
		return nil, err
	}
	if sc.ParentID == nil {
		if err := s.assertCategoryExists(ctx, sc.CategoryID); err != nil {
			return nil, err
		}
	}

	created := &Subcategory{}
	err := scanSubcategory(s.db.QueryRow(ctx, `
		INSERT INTO subcategories (category_id, parent_id, name, order_position, is_active, level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+subcategoryColumns+`;
	`, sc.CategoryID, sc.ParentID, sc.Name, sc.OrderPosition, sc.IsActive, sc.Level), created)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return created, nil
}

func (s *SubcategoriesStore) Update(ctx context.Context, id string, sc *Subcategory) (*Subcategory, error) {
	if strings.TrimSpace(sc.Name) == "" {
		return nil, fmt.Errorf("subcategory name cannot be empty")
	}
	if sc.ParentID != nil && *sc.ParentID == id {
		return nil, ErrCircularParent
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	parent, err := s.resolveParent(ctx, sc)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		if err := s.assertCategoryExists(ctx, sc.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := s.assertAcyclic(ctx, id, parent); err != nil {
		return nil, err
	}

	updated := &Subcategory{}
	err = scanSubcategory(s.db.QueryRow(ctx, `
		UPDATE subcategories
		SET category_id = $1, parent_id = $2, name = $3, order_position = $4,
			is_active = $5, level = $6, updated_at = now()
		WHERE id = $7
		RETURNING `+subcategoryColumns+`;
	`, sc.CategoryID, sc.ParentID, sc.Name, sc.OrderPosition, sc.IsActive, sc.Level, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return updated, nil
}

// Delete issues a single delete; descendant subcategories fall to the schema's
// ON DELETE CASCADE on parent_id.
func (s *SubcategoriesStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByCategory is the flat descendant count used for cascade-delete
// warnings: every subcategory under the category regardless of depth.
func (s *SubcategoriesStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subcategories WHERE category_id = $1;`,
		categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return n, nil
}
