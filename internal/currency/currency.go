// Package currency formats guaraní amounts the way the storefront displays
// them: the ₲ symbol, a space, and the amount rounded to a whole number with
// es-PY digit grouping.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-PY"))

// FormatPrice renders an amount as "₲ 20.000". Fractions round half away from
// zero; guaraníes carry no decimal places.
func FormatPrice(amount float64) string {
	return "₲ " + FormatAmount(amount)
}

// FormatAmount renders the grouped integer without the currency symbol, used
// by the CSV export where the symbol would break spreadsheet imports.
func FormatAmount(amount float64) string {
	return printer.Sprintf("%d", int64(math.Round(amount)))
}
