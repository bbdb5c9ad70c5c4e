package render

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// centsMultiplier converts fractional prices to cents.
const centsMultiplier = 100

// FormatPrice formats a price as "$1,200" or, when it has cents, "$1,200.50".
// Negative values are formatted as "-$1,200".
func FormatPrice(price float64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = math.Abs(price)
	}

	cents := int64(math.Round(price * centsMultiplier))
	whole := cents / centsMultiplier
	frac := cents % centsMultiplier

	formatted := printer.Sprintf("%d", whole)
	if frac != 0 {
		formatted += fmt.Sprintf(".%02d", frac)
	}
	return sign + "$" + formatted
}

// Upper returns s upper-cased for display. Sorting always uses the stored value.
func Upper(s string) string {
	// A Caser keeps state and must not be shared between goroutines.
	return cases.Upper(language.Und).String(s)
}
