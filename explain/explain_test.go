package explain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimfinance/payslip-engine/extract"
	"github.com/pimfinance/payslip-engine/payslip"
)

func sptr(s string) *string   { return &s }
func fptr(f float64) *float64 { return &f }

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234,56", FormatAmount(1234.56, extract.LocaleBR))
	assert.Equal(t, "3.000,00", FormatAmount(3000, extract.LocaleBR))
	assert.Equal(t, "1 234,56", FormatAmount(1234.56, extract.LocaleFR))
	assert.Equal(t, "0,50", FormatAmount(0.5, extract.LocalePT))
	assert.Equal(t, "1.234.567,89", FormatAmount(1234567.89, extract.LocaleBR))
	assert.Equal(t, "-1.234,56", FormatAmount(-1234.56, extract.LocaleBR))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 3.000,00", FormatMoney(3000, extract.LocaleBR))
	assert.Equal(t, "1 234,56 €", FormatMoney(1234.56, extract.LocaleFR))
}

func TestGenerateFullRecord(t *testing.T) {
	rec := &payslip.Extracted{
		EmployeeName:    sptr("Maria Silva"),
		PeriodStart:     sptr("05/2025"),
		GrossSalary:     fptr(3000),
		TotalDeductions: fptr(289.96),
		NetSalary:       fptr(2710.04),
		SocialSecurity:  fptr(253.41),
		IncomeTax:       fptr(36.55),
		Country:         payslip.CountryBR,
	}

	r := Generate(rec)

	assert.Contains(t, r.Summary, "Maria Silva")
	assert.Contains(t, r.Summary, "05/2025")
	assert.Contains(t, r.Summary, "3.000,00")
	assert.Contains(t, r.Summary, "2.710,04")

	assert.Contains(t, strings.Join(r.Deductions, "\n"), "253,41")
	assert.Contains(t, strings.Join(r.Observations, "\n"), "Nenhum item excepcional")
}

func TestGenerateGracefulDegradation(t *testing.T) {
	r := Generate(&payslip.Extracted{EmployeeName: sptr("Maria Silva"), Country: payslip.CountryBR})

	assert.Contains(t, r.Summary, "Maria Silva")
	assert.Contains(t, r.Summary, "período não informado")
	assert.Contains(t, r.Summary, "valores principais não identificados")
	assert.Empty(t, r.Earnings)
	assert.Empty(t, r.Deductions)
}

func TestGenerateNilRecord(t *testing.T) {
	assert.NotPanics(t, func() {
		r := Generate(nil)
		assert.Contains(t, r.Summary, "colaborador não identificado")
	})
}

func TestGeneratePrefersGrossOverTotalEarnings(t *testing.T) {
	r := Generate(&payslip.Extracted{
		GrossSalary:   fptr(3000),
		TotalEarnings: fptr(3500),
		Country:       payslip.CountryBR,
	})
	assert.Contains(t, r.Summary, "salário bruto de R$ 3.000,00")

	r = Generate(&payslip.Extracted{TotalEarnings: fptr(3500), Country: payslip.CountryBR})
	assert.Contains(t, r.Summary, "total de vencimentos de R$ 3.500,00")
}

func TestGenerateReconciliationMismatch(t *testing.T) {
	rec := &payslip.Extracted{
		GrossSalary:     fptr(3000),
		TotalDeductions: fptr(289.96),
		NetSalary:       fptr(2500), // reported net disagrees by 210.04
		Country:         payslip.CountryBR,
	}

	r := Generate(rec)
	joined := strings.Join(r.Observations, "\n")
	assert.Contains(t, joined, "Atenção")
	assert.Contains(t, joined, "2.710,04")
	assert.Contains(t, joined, "2.500,00")

	// The record itself is never corrected.
	assert.Equal(t, 2500.0, *rec.NetSalary)
}

func TestGenerateReconciliationWithinTolerance(t *testing.T) {
	rec := &payslip.Extracted{
		GrossSalary:     fptr(3000),
		TotalDeductions: fptr(289.96),
		NetSalary:       fptr(2710.05), // one cent off is rounding, not a flag
		Country:         payslip.CountryBR,
	}

	for _, obs := range Generate(rec).Observations {
		assert.NotContains(t, obs, "Atenção")
	}
}

func TestGenerateExceptionalItems(t *testing.T) {
	rec := &payslip.Extracted{
		GrossSalary:      fptr(3000),
		ThirteenthSalary: fptr(3000),
		OvertimePay:      fptr(150),
		Country:          payslip.CountryBR,
	}

	r := Generate(rec)
	joined := strings.Join(r.Observations, "\n")
	assert.Contains(t, joined, "13º salário")
	assert.Contains(t, joined, "horas extras")
	assert.NotContains(t, joined, "férias")
}

func TestGenerateFrenchLocaleFormatting(t *testing.T) {
	r := Generate(&payslip.Extracted{
		GrossSalary: fptr(2845.30),
		Country:     payslip.CountryFR,
	})
	assert.Contains(t, r.Summary, "2 845,30 €")
}

func TestGenerateDeterminism(t *testing.T) {
	rec := &payslip.Extracted{
		EmployeeName: sptr("Maria Silva"),
		GrossSalary:  fptr(3000),
		Bonus:        fptr(500),
		Country:      payslip.CountryBR,
	}
	a := Generate(rec)
	b := Generate(rec)
	require.Equal(t, a, b)
}
