package insurance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole US dollars with thousands separators,
// rounding half away from zero: 12449.5 -> "$12,450".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	if d.IsNegative() {
		return "-$" + printer.Sprintf("%d", d.Neg().IntPart())
	}
	return "$" + printer.Sprintf("%d", d.IntPart())
}

// FormatNumber renders an integer with thousands separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
