package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Valid promotional section positions and layout types.
const (
	PositionTop               = "top"
	PositionMiddle            = "middle"
	PositionBottom            = "bottom"
	PositionBetweenCategories = "between_categories"

	SectionFullWidth = "full_width"
	SectionHalfWidth = "half_width"
	SectionGrid2     = "grid_2"
	SectionGrid3     = "grid_3"
)

type PromotionalSection struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url"`
	LinkURL       string    `json:"link_url,omitempty"`
	Category      string    `json:"category,omitempty"`
	Position      string    `json:"position"`
	OrderPosition int       `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	SectionType   string    `json:"section_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PromotionsStore struct {
	db *pgxpool.Pool
}

const promotionColumns = `id, title, COALESCE(description, ''), image_url,
	COALESCE(link_url, ''), COALESCE(category, ''), "position", order_position,
	is_active, section_type, created_at, updated_at`

func scanPromotion(row pgx.Row, p *PromotionalSection) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.LinkURL,
		&p.Category, &p.Position, &p.OrderPosition, &p.IsActive, &p.SectionType,
		&p.CreatedAt, &p.UpdatedAt)
}

func (s *PromotionsStore) List(ctx context.Context, onlyActive bool) ([]PromotionalSection, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+promotionColumns+`
		FROM promotional_sections
		WHERE is_active = true OR $1 = false
		ORDER BY order_position ASC, created_at ASC;
	`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list promotional sections: %w", err)
	}
	defer rows.Close()

	var sections []PromotionalSection
	for rows.Next() {
		var p PromotionalSection
		if err := scanPromotion(rows, &p); err != nil {
			return nil, fmt.Errorf("scan promotional section: %w", err)
		}
		sections = append(sections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return sections, nil
}

func (s *PromotionsStore) GetByID(ctx context.Context, id string) (*PromotionalSection, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &PromotionalSection{}
	err := scanPromotion(s.db.QueryRow(ctx, `
		SELECT `+promotionColumns+`
		FROM promotional_sections
		WHERE id = $1;
	`, id), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get promotional section: %w", err)
	}
	return p, nil
}

func (s *PromotionsStore) Create(ctx context.Context, p *PromotionalSection) (*PromotionalSection, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	created := &PromotionalSection{}
	err := scanPromotion(s.db.QueryRow(ctx, `
		INSERT INTO promotional_sections (title, description, image_url, link_url,
			category, "position", order_position, is_active, section_type)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING `+promotionColumns+`;
	`, p.Title, p.Description, p.ImageURL, p.LinkURL, p.Category,
		p.Position, p.OrderPosition, p.IsActive, p.SectionType), created)
	if err != nil {
		return nil, fmt.Errorf("create promotional section: %w", err)
	}
	return created, nil
}

func (s *PromotionsStore) Update(ctx context.Context, id string, p *PromotionalSection) (*PromotionalSection, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &PromotionalSection{}
	err := scanPromotion(s.db.QueryRow(ctx, `
		UPDATE promotional_sections
		SET title = $1, description = NULLIF($2, ''), image_url = $3,
			link_url = NULLIF($4, ''), category = NULLIF($5, ''), "position" = $6,
			order_position = $7, is_active = $8, section_type = $9, updated_at = now()
		WHERE id = $10
		RETURNING `+promotionColumns+`;
	`, p.Title, p.Description, p.ImageURL, p.LinkURL, p.Category,
		p.Position, p.OrderPosition, p.IsActive, p.SectionType, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update promotional section: %w", err)
	}
	return updated, nil
}

func (s *PromotionsStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM promotional_sections WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete promotional section: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
