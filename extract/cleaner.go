package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Locale carries the separators and currency markers used when cleaning
// monetary strings. OCR output mixes regular and non-breaking spaces, so
// both are always stripped.
type Locale struct {
	Code            string
	Thousands       string
	Decimal         string
	CurrencySymbols []string
}

var (
	// LocaleBR formats as R$ 1.234,56.
	LocaleBR = Locale{Code: "pt-BR", Thousands: ".", Decimal: ",", CurrencySymbols: []string{"R$", "BRL"}}

	// LocalePT formats as 1.234,56 €.
	LocalePT = Locale{Code: "pt-PT", Thousands: ".", Decimal: ",", CurrencySymbols: []string{"€", "EUR"}}

	// LocaleFR formats as 1 234,56 €.
	LocaleFR = Locale{Code: "fr-FR", Thousands: " ", Decimal: ",", CurrencySymbols: []string{"€", "EUR"}}
)

// canonicalAmount is the already-cleaned form: a dot-decimal number with
// one or two decimal digits.
var canonicalAmount = regexp.MustCompile(`^-?\d+\.\d{1,2}$`)

// LocaleFor maps a country code onto its money locale. Unknown countries
// fall back to pt-BR separators, which also cover pt-PT.
func LocaleFor(country string) Locale {
	switch strings.ToUpper(country) {
	case "PT":
		return LocalePT
	case "FR":
		return LocaleFR
	default:
		return LocaleBR
	}
}

// CleanMoney reduces a raw monetary string to a plain decimal form with a
// dot separator: currency symbols and whitespace are stripped, thousands
// separators removed, and the locale decimal comma converted to a dot.
// Cleaning is idempotent: an already-canonical value passes through, its
// decimal dot never re-read as a thousands separator. Non-monetary strings
// come back trimmed but otherwise untouched.
func CleanMoney(s string, loc Locale) string {
	out := strings.TrimSpace(s)
	for _, sym := range loc.CurrencySymbols {
		out = strings.ReplaceAll(out, sym, "")
	}
	out = strings.ReplaceAll(out, " ", "")
	out = strings.ReplaceAll(out, " ", "")

	if canonicalAmount.MatchString(out) {
		return out
	}

	if loc.Thousands != "" && loc.Thousands != " " {
		out = strings.ReplaceAll(out, loc.Thousands, "")
	}
	if loc.Decimal != "." {
		out = strings.ReplaceAll(out, loc.Decimal, ".")
	}
	return strings.TrimSpace(out)
}

// ParseAmount cleans a monetary string and parses it as a float. The ok
// result is false when the string does not hold a number; a failed parse is
// an extraction miss, never a zero.
func ParseAmount(s string, loc Locale) (float64, bool) {
	cleaned := CleanMoney(s, loc)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MoneyCleaner returns the cleaner function form used by Field.
func MoneyCleaner(loc Locale) func(string) string {
	return func(s string) string {
		return CleanMoney(s, loc)
	}
}
