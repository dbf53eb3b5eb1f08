package main

import (
	"fmt"
	"net/http"
	"time"

	"extreme/internal/export"
)

// exportCatalogCSVHandler godoc
//
//	@Summary		Exports the catalog as CSV
//	@Description	Streams a UTF-8 CSV (with BOM) of every product, for spreadsheet import
//	@Tags			storefront,export
//	@Produce		text/csv
//	@Success		200	{string}	string
//	@Router			/catalog/export.csv [get]
func (app *application) exportCatalogCSVHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.Products.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	filename := fmt.Sprintf("catalogo_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, products); err != nil {
		app.logger.Errorw("csv export failed mid-stream", "error", err)
	}
}

// exportCatalogHTMLHandler godoc
//
//	@Summary		Exports the catalog as printable HTML
//	@Description	Returns a self-contained HTML document with product images inlined as base64, ready to print
//	@Tags			storefront,export
//	@Produce		html
//	@Success		200	{string}	string
//	@Router			/catalog/export.html [get]
func (app *application) exportCatalogHTMLHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.Products.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fetch := export.HTTPImageFetcher(&http.Client{Timeout: 15 * time.Second})
	if err := export.WritePrintableHTML(r.Context(), w, products, fetch); err != nil {
		app.logger.Errorw("html export failed mid-stream", "error", err)
	}
}
