package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Banner struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	LinkURL       string    `json:"link_url,omitempty"`
	Category      string    `json:"category,omitempty"`
	ShowTitle     bool      `json:"show_title"`
	ShowShadow    bool      `json:"show_shadow"`
	OrderPosition int       `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BannersStore struct {
	db *pgxpool.Pool
}

const bannerColumns = `id, title, description, image_url, COALESCE(link_url, ''),
	COALESCE(category, ''), show_title, show_shadow, order_position, is_active,
	created_at, updated_at`

func scanBanner(row pgx.Row, b *Banner) error {
	return row.Scan(&b.ID, &b.Title, &b.Description, &b.ImageURL, &b.LinkURL,
		&b.Category, &b.ShowTitle, &b.ShowShadow, &b.OrderPosition, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt)
}

func (s *BannersStore) List(ctx context.Context, onlyActive bool) ([]Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+bannerColumns+`
		FROM banners
		WHERE is_active = true OR $1 = false
		ORDER BY order_position ASC, created_at ASC;
	`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []Banner
	for rows.Next() {
		var b Banner
		if err := scanBanner(rows, &b); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return banners, nil
}

func (s *BannersStore) GetByID(ctx context.Context, id string) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b := &Banner{}
	err := scanBanner(s.db.QueryRow(ctx, `
		SELECT `+bannerColumns+`
		FROM banners
		WHERE id = $1;
	`, id), b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return b, nil
}

func (s *BannersStore) Create(ctx context.Context, b *Banner) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	created := &Banner{}
	err := scanBanner(s.db.QueryRow(ctx, `
		INSERT INTO banners (title, description, image_url, link_url, category,
			show_title, show_shadow, order_position, is_active)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING `+bannerColumns+`;
	`, b.Title, b.Description, b.ImageURL, b.LinkURL, b.Category,
		b.ShowTitle, b.ShowShadow, b.OrderPosition, b.IsActive), created)
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return created, nil
}

func (s *BannersStore) Update(ctx context.Context, id string, b *Banner) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &Banner{}
	err := scanBanner(s.db.QueryRow(ctx, `
		UPDATE banners
		SET title = $1, description = $2, image_url = $3, link_url = NULLIF($4, ''),
			category = NULLIF($5, ''), show_title = $6, show_shadow = $7,
			order_position = $8, is_active = $9, updated_at = now()
		WHERE id = $10
		RETURNING `+bannerColumns+`;
	`, b.Title, b.Description, b.ImageURL, b.LinkURL, b.Category,
		b.ShowTitle, b.ShowShadow, b.OrderPosition, b.IsActive, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update banner: %w", err)
	}
	return updated, nil
}

func (s *BannersStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM banners WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
