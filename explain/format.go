package explain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pimfinance/payslip-engine/extract"
)

// FormatAmount renders a currency value with exactly two decimals and the
// locale's thousands/decimal separators: 1234.56 becomes 1.234,56 for pt-BR
// and 1 234,56 for fr-FR. Fixing the scale through decimal avoids the
// float artifacts that fmt verbs leak into presentation.
func FormatAmount(v float64, loc extract.Locale) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(loc.Thousands)
		}
		grouped.WriteRune(d)
	}

	out := grouped.String() + loc.Decimal + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatMoney prefixes or suffixes the currency marker the way the locale
// writes it: R$ 1.234,56 but 1 234,56 €.
func FormatMoney(v float64, loc extract.Locale) string {
	amount := FormatAmount(v, loc)
	if loc.Code == "pt-BR" {
		return "R$ " + amount
	}
	return amount + " €"
}
