package payroll

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCountry marks a jurisdiction with no bundled tables.
var ErrUnsupportedCountry = errors.New("no bundled bracket tables for country")

// Bundled reference tables for what-if simulation. Callers that load bracket
// rows from their own storage can bypass this registry entirely and build
// Rules by hand; the calculator never fetches tables itself.

// brazilINSS returns the INSS contribution table for the given year.
func brazilINSS(year int) []Bracket {
	switch year {
	case 2024:
		return []Bracket{
			{ID: "br-inss-2024-1", Country: "BR", Kind: KindSocialSecurity, Min: 0, Max: 1412.00, Rate: 0.075, Year: 2024, Active: true},
			{ID: "br-inss-2024-2", Country: "BR", Kind: KindSocialSecurity, Min: 1412.01, Max: 2666.68, Rate: 0.09, Year: 2024, Active: true},
			{ID: "br-inss-2024-3", Country: "BR", Kind: KindSocialSecurity, Min: 2666.69, Max: 4000.03, Rate: 0.12, Year: 2024, Active: true},
			{ID: "br-inss-2024-4", Country: "BR", Kind: KindSocialSecurity, Min: 4000.04, Max: 0, Rate: 0.14, Year: 2024, Active: true},
		}
	default:
		return []Bracket{
			{ID: "br-inss-2025-1", Country: "BR", Kind: KindSocialSecurity, Min: 0, Max: 1518.00, Rate: 0.075, Year: 2025, Active: true},
			{ID: "br-inss-2025-2", Country: "BR", Kind: KindSocialSecurity, Min: 1518.01, Max: 2793.88, Rate: 0.09, Year: 2025, Active: true},
			{ID: "br-inss-2025-3", Country: "BR", Kind: KindSocialSecurity, Min: 2793.89, Max: 4190.83, Rate: 0.12, Year: 2025, Active: true},
			{ID: "br-inss-2025-4", Country: "BR", Kind: KindSocialSecurity, Min: 4190.84, Max: 0, Rate: 0.14, Year: 2025, Active: true},
		}
	}
}

// brazilIRRF returns the monthly IRRF table for the given year. The table
// has been stable since February 2024.
func brazilIRRF(year int) []Bracket {
	return []Bracket{
		{ID: fmt.Sprintf("br-irrf-%d-1", year), Country: "BR", Kind: KindIncomeTax, Min: 0, Max: 2259.20, Rate: 0, Deduction: 0, Year: year, Active: true},
		{ID: fmt.Sprintf("br-irrf-%d-2", year), Country: "BR", Kind: KindIncomeTax, Min: 2259.21, Max: 2826.65, Rate: 0.075, Deduction: 169.44, Year: year, Active: true},
		{ID: fmt.Sprintf("br-irrf-%d-3", year), Country: "BR", Kind: KindIncomeTax, Min: 2826.66, Max: 3751.05, Rate: 0.15, Deduction: 381.44, Year: year, Active: true},
		{ID: fmt.Sprintf("br-irrf-%d-4", year), Country: "BR", Kind: KindIncomeTax, Min: 3751.06, Max: 4664.68, Rate: 0.225, Deduction: 662.77, Year: year, Active: true},
		{ID: fmt.Sprintf("br-irrf-%d-5", year), Country: "BR", Kind: KindIncomeTax, Min: 4664.69, Max: 0, Rate: 0.275, Deduction: 896.00, Year: year, Active: true},
	}
}

// BrazilRules assembles the Brazilian statutory constants for a year.
// The contribution cap is the contribution at the INSS ceiling salary, and
// like the per-dependent deduction it lives in the Rules value so historical
// years stay recalculable.
func BrazilRules(year int) (*Rules, error) {
	inss, err := NewSchedule(KindSocialSecurity, brazilINSS(year))
	if err != nil {
		return nil, fmt.Errorf("building INSS schedule for %d: %w", year, err)
	}
	irrf, err := NewSchedule(KindIncomeTax, brazilIRRF(year))
	if err != nil {
		return nil, fmt.Errorf("building IRRF schedule for %d: %w", year, err)
	}

	r := &Rules{
		Country:              "BR",
		Year:                 year,
		SocialSecurity:       inss,
		IncomeTax:            irrf,
		DependentDeduction:   189.59,
		StandardMonthlyHours: 220,
	}
	switch year {
	case 2024:
		r.ContributionCap = 908.85
		r.FamilyAllowanceValue = 62.04
		r.FamilyAllowanceLimit = 1819.26
	default:
		r.ContributionCap = 951.63
		r.FamilyAllowanceValue = 65.00
		r.FamilyAllowanceLimit = 1906.04
	}
	return r, nil
}

// RulesFor looks up bundled rules by country code and year.
func RulesFor(country string, year int) (*Rules, error) {
	switch country {
	case "BR":
		return BrazilRules(year)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
}
