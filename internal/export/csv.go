// Package export renders the catalog for offline use: a spreadsheet-friendly
// CSV and a printable HTML document with images inlined.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"extreme/internal/currency"
	"extreme/internal/store"
)

// utf8BOM makes Excel detect the encoding; without it the accented headers
// come out mangled on Windows.
const utf8BOM = "\uFEFF"

var csvHeaders = []string{
	"SKU", "Nombre", "Marca", "Categoría", "Precio", "Stock",
	"Descripción", "Dimensiones", "Compatibilidad",
}

// WriteCSV emits the product list as UTF-8 CSV, one row per product in the
// given order. Prices are grouped integers without the currency symbol.
func WriteCSV(w io.Writer, products []store.Product) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, p := range products {
		row := []string{
			p.SKU,
			p.Name,
			p.Brand,
			p.Category,
			currency.FormatAmount(p.Price),
			fmt.Sprintf("%d", p.Stock),
			p.Description,
			p.Dimensions,
			p.Compatibility,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
