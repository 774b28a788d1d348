package extract

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var grossRe = regexp.MustCompile(`(?i)sal[aá]rio\s+bruto\s*:?\s*(?:R\$)?\s*([\d.,]+)`)

func TestFieldRegexTakesPriority(t *testing.T) {
	lines := []string{"Recibo de Pagamento", "Salário Bruto: R$ 3.000,00"}
	entities := []Entity{{Type: "gross_amount", Text: "9.999,99"}}

	got, source := Field(lines, grossRe, []string{"gross"}, entities, MoneyCleaner(LocaleBR))
	assert.Equal(t, "3000.00", got)
	assert.Equal(t, SourceRegex, source)
}

func TestFieldEntityFallback(t *testing.T) {
	lines := []string{"texto sem valores"}
	entities := []Entity{
		{Type: "some_other_type", Text: "x"},
		{Type: "document_gross_amount", Text: "R$ 3.000,00"},
	}

	got, source := Field(lines, grossRe, []string{"gross"}, entities, MoneyCleaner(LocaleBR))
	assert.Equal(t, "3000.00", got, "entity type match is a case-insensitive substring")
	assert.Equal(t, SourceEntity, source)
}

func TestFieldEntityPriorityOrder(t *testing.T) {
	entities := []Entity{
		{Type: "net_amount", Text: "2.710,04"},
		{Type: "gross_amount", Text: "3.000,00"},
	}

	got, _ := Field(nil, nil, []string{"gross", "net"}, entities, MoneyCleaner(LocaleBR))
	assert.Equal(t, "3000.00", got, "candidate order outranks entity order")
}

func TestFieldFirstLineMatchWins(t *testing.T) {
	lines := []string{
		"Salário Bruto: 3.000,00",
		"Salário Bruto: 9.999,99", // duplicated page footer
	}
	got, _ := Field(lines, grossRe, nil, nil, MoneyCleaner(LocaleBR))
	assert.Equal(t, "3000.00", got)
}

func TestFieldMissesReturnEmpty(t *testing.T) {
	got, source := Field([]string{"nada aqui"}, grossRe, []string{"gross"}, nil, MoneyCleaner(LocaleBR))
	assert.Empty(t, got, "a financial figure is never guessed")
	assert.Equal(t, SourceNone, source)
}

func TestFieldWithoutCleaner(t *testing.T) {
	lines := []string{"Funcionário: Maria Silva"}
	re := regexp.MustCompile(`(?i)funcion[aá]rio\s*:?\s+([A-Za-zÀ-ÿ ]+)`)
	got, _ := Field(lines, re, nil, nil, nil)
	assert.Equal(t, "Maria Silva", got)
}

func TestFieldEmptyCaptureFallsBackToEntity(t *testing.T) {
	// The label line matches but the capture holds only whitespace, so
	// the value must come from the entity and be attributed to it.
	re := regexp.MustCompile(`(?i)sal[aá]rio\s+bruto\s*:?(.*)`)
	lines := []string{"Salário Bruto:   "}
	entities := []Entity{{Type: "gross_salary", Text: "3.000,00", Confidence: 0.9}}
	got, source := Field(lines, re, []string{"gross"}, entities, MoneyCleaner(LocaleBR))
	assert.Equal(t, "3000.00", got)
	assert.Equal(t, SourceEntity, source)
}

func TestCleanMoney(t *testing.T) {
	assert.Equal(t, "3000.00", CleanMoney("R$ 3.000,00", LocaleBR))
	assert.Equal(t, "1234.56", CleanMoney("1.234,56 €", LocalePT))
	assert.Equal(t, "1234.56", CleanMoney("1 234,56 €", LocaleFR))
	assert.Equal(t, "150", CleanMoney("  150 ", LocaleBR))
}

func TestCleanMoneyIdempotent(t *testing.T) {
	// A canonical value keeps its decimal dot on a second pass; the dot
	// is never re-read as a thousands separator.
	once := CleanMoney("R$ 3.000,00", LocaleBR)
	assert.Equal(t, "3000.00", once)
	assert.Equal(t, "3000.00", CleanMoney(once, LocaleBR))
	assert.Equal(t, "42.5", CleanMoney("42.5", LocaleBR))
	// Three digits after a dot is still a thousands group, not cents.
	assert.Equal(t, "3000", CleanMoney("3.000", LocaleBR))
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("R$ 3.000,00", LocaleBR)
	assert.True(t, ok)
	assert.Equal(t, 3000.0, v)

	_, ok = ParseAmount("ilegível", LocaleBR)
	assert.False(t, ok)

	_, ok = ParseAmount("", LocaleBR)
	assert.False(t, ok)
}

func TestEmployerNearTaxID(t *testing.T) {
	lines := []string{
		"Recibo de Pagamento de Salário",
		"Acme Indústria e Comércio",
		"CNPJ: 12.345.678/0001-90",
		"Funcionário: Maria Silva",
	}
	assert.Equal(t, "Acme Indústria e Comércio", EmployerNearTaxID(lines))

	assert.Empty(t, EmployerNearTaxID([]string{"sem identificador fiscal"}))
}

func TestBrazilianPatternsAgainstFixtureText(t *testing.T) {
	text := `Acme Indústria e Comércio
CNPJ: 12.345.678/0001-90
Funcionário: Maria Silva
Cargo: Analista de Sistemas
Competência: 05/2025
Salário Bruto: R$ 3.000,00
INSS 9,00% 253,41
IRRF 7,50% 36,55
FGTS do Mês: 240,00
Total de Vencimentos: 3.000,00
Total de Descontos: 289,96
Salário Líquido: R$ 2.710,04`

	lines := strings.Split(text, "\n")
	cleaner := MoneyCleaner(LocaleBR)

	raw := map[string]string{}
	for _, p := range PatternsFor("BR") {
		var c func(string) string
		if p.Money {
			c = cleaner
		}
		if v, _ := Field(lines, p.Regex, p.EntityTypes, nil, c); v != "" {
			raw[p.RawKey] = v
		}
	}

	assert.Equal(t, "3000.00", raw["salario_bruto"])
	assert.Equal(t, "2710.04", raw["salario_liquido"])
	assert.Equal(t, "253.41", raw["inss"])
	assert.Equal(t, "36.55", raw["irrf"])
	assert.Equal(t, "240.00", raw["fgts_mes"])
	assert.Equal(t, "3000.00", raw["total_vencimentos"])
	assert.Equal(t, "289.96", raw["total_descontos"])
	assert.Equal(t, "12.345.678/0001-90", raw["cnpj"])
	assert.Equal(t, "Maria Silva", raw["funcionario"])
	assert.Equal(t, "05/2025", raw["competencia"])
}

func TestFrenchPatterns(t *testing.T) {
	lines := []string{
		"Employeur : Société Exemple",
		"Période : 05/2025",
		"Salaire brut : 2 845,30 €",
		"Net à payer : 2 230,10 €",
	}
	cleaner := MoneyCleaner(LocaleFR)

	raw := map[string]string{}
	for _, p := range PatternsFor("FR") {
		var c func(string) string
		if p.Money {
			c = cleaner
		}
		if v, _ := Field(lines, p.Regex, p.EntityTypes, nil, c); v != "" {
			raw[p.RawKey] = v
		}
	}

	assert.Equal(t, "2845.30", raw["salaire_brut"])
	assert.Equal(t, "2230.10", raw["net_a_payer"])
	assert.Equal(t, "05/2025", raw["periode"])
}

func TestEmployerRawKey(t *testing.T) {
	assert.Equal(t, "empresa", EmployerRawKey("BR"))
	assert.Equal(t, "entidade_patronal", EmployerRawKey("PT"))
	assert.Equal(t, "employeur", EmployerRawKey("FR"))
}
