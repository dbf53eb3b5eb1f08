package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SiteTheme struct {
	ID                     string    `json:"id"`
	ThemeName              string    `json:"theme_name"`
	PrimaryColor           string    `json:"primary_color"`
	SecondaryColor         string    `json:"secondary_color"`
	AccentColor            string    `json:"accent_color"`
	BackgroundGradientFrom string    `json:"background_gradient_from"`
	BackgroundGradientTo   string    `json:"background_gradient_to"`
	HeaderBackground       string    `json:"header_background"`
	ButtonGradientFrom     string    `json:"button_gradient_from"`
	ButtonGradientTo       string    `json:"button_gradient_to"`
	CustomCSS              string    `json:"custom_css,omitempty"`
	Active                 bool      `json:"active"`
	CreatedAt              time.Time `json:"created_at"`
}

type ThemesStore struct {
	db *pgxpool.Pool
}

const themeColumns = `id, theme_name, primary_color, secondary_color, accent_color,
	background_gradient_from, background_gradient_to, header_background,
	button_gradient_from, button_gradient_to, COALESCE(custom_css, ''), active, created_at`

func scanTheme(row pgx.Row, t *SiteTheme) error {
	return row.Scan(&t.ID, &t.ThemeName, &t.PrimaryColor, &t.SecondaryColor,
		&t.AccentColor, &t.BackgroundGradientFrom, &t.BackgroundGradientTo,
		&t.HeaderBackground, &t.ButtonGradientFrom, &t.ButtonGradientTo,
		&t.CustomCSS, &t.Active, &t.CreatedAt)
}

func (s *ThemesStore) List(ctx context.Context) ([]SiteTheme, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+themeColumns+`
		FROM site_theme_settings
		ORDER BY created_at ASC;
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []SiteTheme
	for rows.Next() {
		var t SiteTheme
		if err := scanTheme(rows, &t); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return themes, nil
}

func (s *ThemesStore) GetActive(ctx context.Context) (*SiteTheme, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	t := &SiteTheme{}
	err := scanTheme(s.db.QueryRow(ctx, `
		SELECT `+themeColumns+`
		FROM site_theme_settings
		WHERE active = true
		LIMIT 1;
	`), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active theme: %w", err)
	}
	return t, nil
}

func (s *ThemesStore) Create(ctx context.Context, t *SiteTheme) (*SiteTheme, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	created := &SiteTheme{}
	err := scanTheme(s.db.QueryRow(ctx, `
		INSERT INTO site_theme_settings (theme_name, primary_color, secondary_color,
			accent_color, background_gradient_from, background_gradient_to,
			header_background, button_gradient_from, button_gradient_to, custom_css, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
		RETURNING `+themeColumns+`;
	`, t.ThemeName, t.PrimaryColor, t.SecondaryColor, t.AccentColor,
		t.BackgroundGradientFrom, t.BackgroundGradientTo, t.HeaderBackground,
		t.ButtonGradientFrom, t.ButtonGradientTo, t.CustomCSS, t.Active), created)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return created, nil
}

func (s *ThemesStore) Update(ctx context.Context, id string, t *SiteTheme) (*SiteTheme, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &SiteTheme{}
	err := scanTheme(s.db.QueryRow(ctx, `
		UPDATE site_theme_settings
		SET theme_name = $1, primary_color = $2, secondary_color = $3, accent_color = $4,
			background_gradient_from = $5, background_gradient_to = $6,
			header_background = $7, button_gradient_from = $8, button_gradient_to = $9,
			custom_css = NULLIF($10, '')
		WHERE id = $11
		RETURNING `+themeColumns+`;
	`, t.ThemeName, t.PrimaryColor, t.SecondaryColor, t.AccentColor,
		t.BackgroundGradientFrom, t.BackgroundGradientTo, t.HeaderBackground,
		t.ButtonGradientFrom, t.ButtonGradientTo, t.CustomCSS, id), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update theme: %w", err)
	}
	return updated, nil
}

// themeTx is the slice of pgx.Tx the activation flip needs.
type themeTx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// flipActiveTheme turns every other theme off before turning the given one
// on; the whole flip commits or rolls back as a unit, so exactly one theme is
// ever active.
func flipActiveTheme(ctx context.Context, tx themeTx, id string) error {
	if _, err := tx.Exec(ctx,
		`UPDATE site_theme_settings SET active = false WHERE id <> $1;`, id); err != nil {
		return fmt.Errorf("deactivate themes: %w", err)
	}
	cmd, err := tx.Exec(ctx,
		`UPDATE site_theme_settings SET active = true WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("activate theme: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Activate flips the given theme on inside a transaction.
func (s *ThemesStore) Activate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Printf("warning: rollback failed: %v", err)
		}
	}()

	if err := flipActiveTheme(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *ThemesStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM site_theme_settings WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
