package main

import (
	"context"
	"time"
)

// refreshStorefront re-reads every storefront collection into the shared
// snapshot.
func (app *application) refreshStorefront() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.composer.Refresh(ctx); err != nil {
		app.logger.Errorw("storefront refresh failed", "error", err)
		return
	}
	app.logger.Infow("storefront snapshot refreshed")
}

// refreshStorefrontAsync kicks a refresh without holding up the caller.
// Mutating admin handlers call it after a successful write so the next public
// catalog read reflects the change instead of waiting out the ticker.
func (app *application) refreshStorefrontAsync() {
	go app.refreshStorefront()
}

// refreshStorefrontEvery keeps the shared storefront snapshot warm so public
// catalog requests never wait on four queries.
func (app *application) refreshStorefrontEvery(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run once immediately
		app.refreshStorefront()

		for range ticker.C {
			app.refreshStorefront()
		}
	}()
}
