package payslip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRawBrazilianMoneyStrings(t *testing.T) {
	raw := map[string]any{
		"empresa":         "Acme Ltda",
		"cnpj":            "12.345.678/0001-90",
		"funcionario":     "Maria Silva",
		"salario_bruto":   "R$ 3.000,00",
		"salario_liquido": "2.710,04",
		"inss":            "253,41",
		"irrf":            "36,55",
		"competencia":     "05/2025",
	}

	e := NormalizeRaw(raw, CountryBR)

	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 3000.0, *e.GrossSalary)
	require.NotNil(t, e.NetSalary)
	assert.Equal(t, 2710.04, *e.NetSalary)
	require.NotNil(t, e.SocialSecurity)
	assert.Equal(t, 253.41, *e.SocialSecurity)
	require.NotNil(t, e.IncomeTax)
	assert.Equal(t, 36.55, *e.IncomeTax)

	assert.Equal(t, "Acme Ltda", *e.EmployerName)
	assert.Equal(t, "Maria Silva", *e.EmployeeName)

	// competencia feeds both ends of the period.
	assert.Equal(t, "05/2025", *e.PeriodStart)
	assert.Equal(t, "05/2025", *e.PeriodEnd)

	assert.Nil(t, e.FundBase, "absent raw field stays nil")
	assert.Equal(t, CountryBR, e.Country)
	assert.False(t, e.ExtractedAt.IsZero())
}

func TestNormalizeRawSynonymOrder(t *testing.T) {
	raw := map[string]any{
		"salario_bruto": "2.500,00",
		"salario_base":  "1.000,00",
	}
	e := NormalizeRaw(raw, CountryBR)
	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 2500.0, *e.GrossSalary, "earlier synonym wins")

	raw = map[string]any{"salario_base": "1.000,00"}
	e = NormalizeRaw(raw, CountryBR)
	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 1000.0, *e.GrossSalary, "later synonym fills the gap")
}

func TestNormalizeRawParseFailureIsNilNotZero(t *testing.T) {
	e := NormalizeRaw(map[string]any{"salario_bruto": "ilegível"}, CountryBR)
	assert.Nil(t, e.GrossSalary)
}

func TestNormalizeRawNegativeAmountIsNil(t *testing.T) {
	e := NormalizeRaw(map[string]any{"salario_bruto": "-100,00"}, CountryBR)
	assert.Nil(t, e.GrossSalary)
}

func TestNormalizeRawNumericPassthrough(t *testing.T) {
	e := NormalizeRaw(map[string]any{"salario_bruto": 3000.0, "inss": 253}, CountryBR)
	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 3000.0, *e.GrossSalary)
	require.NotNil(t, e.SocialSecurity)
	assert.Equal(t, 253.0, *e.SocialSecurity)
}

func TestNormalizeRawCountryInapplicableFields(t *testing.T) {
	// Portuguese payslips have no FGTS; the raw keys are ignored, not an error.
	raw := map[string]any{
		"vencimento_base": "1.400,00",
		"base_fgts":       "1.400,00",
		"fgts_mes":        "112,00",
	}
	e := NormalizeRaw(raw, CountryPT)

	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 1400.0, *e.GrossSalary)
	assert.Nil(t, e.FundBase)
	assert.Nil(t, e.FundDeposit)
}

func TestNormalizeRawFrenchLocale(t *testing.T) {
	e := NormalizeRaw(map[string]any{"salaire_brut": "2 845,30 €"}, CountryFR)
	require.NotNil(t, e.GrossSalary)
	assert.Equal(t, 2845.30, *e.GrossSalary)
}

func TestNormalizeRawDeterminism(t *testing.T) {
	raw := map[string]any{
		"salario_bruto":   "3.000,00",
		"salario_liquido": "2.710,04",
		"funcionario":     "Maria Silva",
	}

	a := NormalizeRaw(raw, CountryBR)
	b := NormalizeRaw(raw, CountryBR)

	// Timestamps differ; everything else must not.
	a.ExtractedAt = time.Time{}
	b.ExtractedAt = time.Time{}
	assert.Equal(t, a, b)
	assert.Equal(t, a.Confidence, b.Confidence)
}

func TestParseCountry(t *testing.T) {
	c, err := ParseCountry(" br ")
	require.NoError(t, err)
	assert.Equal(t, CountryBR, c)

	_, err = ParseCountry("US")
	assert.Error(t, err)
}
