package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FooterSettings is a single-row table: the storefront reads the first row and
// the back office updates it in place.
type FooterSettings struct {
	ID                 string `json:"id"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	FacebookURL        string `json:"facebook_url"`
	InstagramURL       string `json:"instagram_url"`
	TwitterURL         string `json:"twitter_url"`
	WhatsappNumber     string `json:"whatsapp_number"`
	CopyrightText      string `json:"copyright_text"`
}

type FooterStore struct {
	db *pgxpool.Pool
}

const footerColumns = `id, company_name, company_description, address, phone, email,
	COALESCE(facebook_url, ''), COALESCE(instagram_url, ''), COALESCE(twitter_url, ''),
	COALESCE(whatsapp_number, ''), copyright_text`

func scanFooter(row pgx.Row, f *FooterSettings) error {
	return row.Scan(&f.ID, &f.CompanyName, &f.CompanyDescription, &f.Address,
		&f.Phone, &f.Email, &f.FacebookURL, &f.InstagramURL, &f.TwitterURL,
		&f.WhatsappNumber, &f.CopyrightText)
}

func (s *FooterStore) Get(ctx context.Context) (*FooterSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	f := &FooterSettings{}
	err := scanFooter(s.db.QueryRow(ctx, `
		SELECT `+footerColumns+`
		FROM footer_settings
		ORDER BY created_at ASC
		LIMIT 1;
	`), f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get footer settings: %w", err)
	}
	return f, nil
}

func (s *FooterStore) Update(ctx context.Context, f *FooterSettings) (*FooterSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &FooterSettings{}
	err := scanFooter(s.db.QueryRow(ctx, `
		UPDATE footer_settings
		SET company_name = $1, company_description = $2, address = $3, phone = $4,
			email = $5, facebook_url = NULLIF($6, ''), instagram_url = NULLIF($7, ''),
			twitter_url = NULLIF($8, ''), whatsapp_number = NULLIF($9, ''),
			copyright_text = $10, updated_at = now()
		WHERE id = $11
		RETURNING `+footerColumns+`;
	`, f.CompanyName, f.CompanyDescription, f.Address, f.Phone, f.Email,
		f.FacebookURL, f.InstagramURL, f.TwitterURL, f.WhatsappNumber,
		f.CopyrightText, f.ID), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update footer settings: %w", err)
	}
	return updated, nil
}
