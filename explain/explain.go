// Package explain turns a canonical payslip record into a deterministic,
// rule-based report in plain language: a summary sentence, the earnings and
// deduction lines, and data-quality observations. It never fails on a
// partially-populated record; missing fields degrade to generic phrasing.
package explain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pimfinance/payslip-engine/extract"
	"github.com/pimfinance/payslip-engine/payslip"
)

// Report is the structure handed to the presentation collaborator.
type Report struct {
	Summary      string   `json:"summary"`
	Earnings     []string `json:"earnings"`
	Deductions   []string `json:"deductions"`
	Observations []string `json:"observations"`
}

// reconciliation tolerance: one cent.
var centTolerance = decimal.New(1, -2)

// exceptionalTerms maps a keyword found anywhere in the serialized record
// to the label reported for it.
var exceptionalTerms = []struct {
	keyword string
	label   string
}{
	{"ferias", "férias"},
	{"férias", "férias"},
	{"conges", "férias"},
	{"decimo", "13º salário"},
	{"thirteenth", "13º salário"},
	{"natal", "13º salário"},
	{"treizieme", "13º salário"},
	{"bonus", "bônus"},
	{"prime", "bônus"},
	{"gratifica", "bônus"},
	{"extra", "horas extras"},
	{"overtime", "horas extras"},
	{"supplementaire", "horas extras"},
}

// Generate builds the report for one record.
func Generate(e *payslip.Extracted) Report {
	if e == nil {
		e = &payslip.Extracted{}
	}
	loc := extract.LocaleFor(string(e.Country))

	r := Report{
		Summary:      summary(e, loc),
		Earnings:     earnings(e, loc),
		Deductions:   deductions(e, loc),
		Observations: []string{},
	}

	if items := exceptionalItems(e); len(items) > 0 {
		r.Observations = append(r.Observations,
			"Itens excepcionais neste período: "+strings.Join(items, ", ")+".")
	} else {
		r.Observations = append(r.Observations, "Nenhum item excepcional identificado neste período.")
	}

	if obs := reconcile(e, loc); obs != "" {
		r.Observations = append(r.Observations, obs)
	}

	return r
}

func summary(e *payslip.Extracted, loc extract.Locale) string {
	period := "período não informado"
	if e.PeriodStart != nil {
		period = "período " + *e.PeriodStart
	}

	who := "colaborador não identificado"
	if e.EmployeeName != nil {
		who = *e.EmployeeName
	}

	// Gross is preferred; total earnings stand in when it is missing.
	base := e.GrossSalary
	baseLabel := "salário bruto"
	if base == nil {
		base = e.TotalEarnings
		baseLabel = "total de vencimentos"
	}

	var figures []string
	if base != nil {
		figures = append(figures, fmt.Sprintf("%s de %s", baseLabel, FormatMoney(*base, loc)))
	}
	if e.TotalDeductions != nil {
		figures = append(figures, fmt.Sprintf("descontos de %s", FormatMoney(*e.TotalDeductions, loc)))
	}
	if e.NetSalary != nil {
		figures = append(figures, fmt.Sprintf("valor líquido de %s", FormatMoney(*e.NetSalary, loc)))
	}
	if len(figures) == 0 {
		figures = append(figures, "valores principais não identificados")
	}

	return fmt.Sprintf("Holerite de %s, %s: %s.", period, who, strings.Join(figures, ", "))
}

func earnings(e *payslip.Extracted, loc extract.Locale) []string {
	lines := []string{}
	add := func(label string, v *float64) {
		if v != nil {
			lines = append(lines, fmt.Sprintf("%s: %s", label, FormatMoney(*v, loc)))
		}
	}
	add("Salário bruto", e.GrossSalary)
	add("Horas extras", e.OvertimePay)
	add("Férias", e.VacationPay)
	add("13º salário", e.ThirteenthSalary)
	add("Bônus", e.Bonus)
	add("Vale-refeição", e.MealAllowance)
	add("Vale-alimentação", e.FoodAllowance)
	add("Total de vencimentos", e.TotalEarnings)
	return lines
}

func deductions(e *payslip.Extracted, loc extract.Locale) []string {
	lines := []string{}
	add := func(label string, v *float64) {
		if v != nil {
			lines = append(lines, fmt.Sprintf("%s: %s", label, FormatMoney(*v, loc)))
		}
	}
	add("Contribuição previdenciária", e.SocialSecurity)
	add("Imposto de renda retido", e.IncomeTax)
	add("Plano de saúde", e.HealthInsurance)
	add("Plano odontológico", e.DentalInsurance)
	add("Previdência privada", e.PrivatePension)
	add("Total de descontos", e.TotalDeductions)
	return lines
}

// exceptionalItems flags vacation pay, 13th salary, bonus and overtime. An
// item counts when its field carries a value or when one of its keywords
// shows up in the record's text fields; the serialized numeric shape alone
// never triggers, since every record shares the same field names.
func exceptionalItems(e *payslip.Extracted) []string {
	haystack := strings.ToLower(strings.Join(textValues(e), " "))

	fieldFor := map[string]*float64{
		"férias":       e.VacationPay,
		"13º salário":  e.ThirteenthSalary,
		"bônus":        e.Bonus,
		"horas extras": e.OvertimePay,
	}

	seen := map[string]bool{}
	var items []string
	for _, term := range exceptionalTerms {
		hit := fieldFor[term.label] != nil || strings.Contains(haystack, term.keyword)
		if hit && !seen[term.label] {
			seen[term.label] = true
			items = append(items, term.label)
		}
	}
	return items
}

// textValues serializes the record and collects its string values.
func textValues(e *payslip.Extracted) []string {
	serialized, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var flat map[string]any
	if err := json.Unmarshal(serialized, &flat); err != nil {
		return nil
	}
	var values []string
	for _, v := range flat {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// reconcile compares gross minus reported deductions against reported net.
// Anything beyond one cent is surfaced as an observation. The record itself
// is never corrected.
func reconcile(e *payslip.Extracted, loc extract.Locale) string {
	if e.GrossSalary == nil || e.TotalDeductions == nil || e.NetSalary == nil {
		return ""
	}

	gross := decimal.NewFromFloat(*e.GrossSalary)
	deds := decimal.NewFromFloat(*e.TotalDeductions)
	net := decimal.NewFromFloat(*e.NetSalary)

	diff := gross.Sub(deds).Sub(net).Abs()
	if diff.Cmp(centTolerance) <= 0 {
		return ""
	}

	computed, _ := gross.Sub(deds).Float64()
	return fmt.Sprintf(
		"Atenção: bruto menos descontos resulta em %s, mas o líquido informado é %s (diferença de %s). Verifique o documento.",
		FormatMoney(computed, loc),
		FormatMoney(*e.NetSalary, loc),
		FormatAmount(mustFloat(diff), loc),
	)
}

func mustFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
