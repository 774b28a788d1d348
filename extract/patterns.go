package extract

import "regexp"

// FieldPattern binds one raw payslip field to its extraction strategy: the
// line regex tried first, then the document-AI entity types tried in order.
// Money fields get the locale money cleaner applied to the value.
type FieldPattern struct {
	RawKey      string
	Regex       *regexp.Regexp
	EntityTypes []string
	Money       bool
}

// amount is the loose money capture used across all locales; cleaning and
// parsing happen later, so stray separators are fine here.
const amount = `((?:\d{1,3}(?:[.,\s]\d{3})*|\d+)(?:[.,]\d{2})?)`

var brPatterns = []FieldPattern{
	{RawKey: "empresa", Regex: regexp.MustCompile(`(?i)(?:empresa|empregador|raz[aã]o\s+social)\s*:?\s+(.{3,80})`), EntityTypes: []string{"employer_name", "supplier_name", "company"}},
	{RawKey: "cnpj", Regex: regexp.MustCompile(`(?i)CNPJ\s*:?\s*([\d]{2}\.?[\d]{3}\.?[\d]{3}/?[\d]{4}-?[\d]{2})`), EntityTypes: []string{"employer_tax_id", "cnpj"}},
	{RawKey: "funcionario", Regex: regexp.MustCompile(`(?i)(?:funcion[aá]rio|colaborador|nome\s+do\s+empregado)\s*:?\s+([A-Za-zÀ-ÿ .']{3,60})`), EntityTypes: []string{"employee_name", "person"}},
	{RawKey: "cpf", Regex: regexp.MustCompile(`(?i)CPF\s*:?\s*([\d]{3}\.?[\d]{3}\.?[\d]{3}-?[\d]{2})`), EntityTypes: []string{"employee_tax_id", "cpf"}},
	{RawKey: "cargo", Regex: regexp.MustCompile(`(?i)(?:cargo|fun[cç][aã]o)\s*:?\s+([A-Za-zÀ-ÿ /]{3,50})`), EntityTypes: []string{"job_title", "occupation"}},
	{RawKey: "data_admissao", Regex: regexp.MustCompile(`(?i)(?:data\s+de\s+)?admiss[aã]o\s*:?\s*(\d{2}/\d{2}/\d{4})`), EntityTypes: []string{"admission_date", "hire_date"}},
	{RawKey: "competencia", Regex: regexp.MustCompile(`(?i)(?:compet[eê]ncia|refer[eê]ncia|per[ií]odo)\s*:?\s*(\d{2}/\d{4})`), EntityTypes: []string{"pay_period", "period"}},
	{RawKey: "salario_bruto", Regex: regexp.MustCompile(`(?i)sal[aá]rio\s+bruto\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"gross_amount", "gross_salary"}, Money: true},
	{RawKey: "salario_liquido", Regex: regexp.MustCompile(`(?i)(?:sal[aá]rio\s+)?l[ií]quido(?:\s+a\s+receber)?\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"net_amount", "net_salary"}, Money: true},
	{RawKey: "total_vencimentos", Regex: regexp.MustCompile(`(?i)total\s+(?:de\s+)?(?:vencimentos|proventos)\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"total_earnings"}, Money: true},
	{RawKey: "total_descontos", Regex: regexp.MustCompile(`(?i)total\s+(?:de\s+)?descontos\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"total_deductions"}, Money: true},
	{RawKey: "inss", Regex: regexp.MustCompile(`(?i)\bINSS\b[^\d%]*(?:\d{1,2},\d{2}\s*%?\s*)?` + amount), EntityTypes: []string{"social_security", "inss"}, Money: true},
	{RawKey: "irrf", Regex: regexp.MustCompile(`(?i)\bIRR?F\b[^\d%]*(?:\d{1,2},\d{2}\s*%?\s*)?` + amount), EntityTypes: []string{"income_tax", "irrf"}, Money: true},
	{RawKey: "base_fgts", Regex: regexp.MustCompile(`(?i)base\s+(?:de\s+c[aá]lc(?:ulo)?\s+)?FGTS\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"fgts_base"}, Money: true},
	{RawKey: "fgts_mes", Regex: regexp.MustCompile(`(?i)FGTS\s+(?:do\s+)?m[eê]s\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"fgts_deposit"}, Money: true},
	{RawKey: "ferias", Regex: regexp.MustCompile(`(?i)f[eé]rias(?:\s+\+?\s*1/3)?\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"vacation"}, Money: true},
	{RawKey: "decimo_terceiro", Regex: regexp.MustCompile(`(?i)(?:13[oº°]?\s+sal[aá]rio|d[eé]cimo\s+terceiro)\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"thirteenth", "bonus"}, Money: true},
	{RawKey: "horas_extras", Regex: regexp.MustCompile(`(?i)horas?\s+extras?(?:\s+\d{2,3}%)?\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"overtime"}, Money: true},
	{RawKey: "vale_refeicao", Regex: regexp.MustCompile(`(?i)vale[\s-]*refei[cç][aã]o\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"meal_allowance"}, Money: true},
	{RawKey: "vale_alimentacao", Regex: regexp.MustCompile(`(?i)vale[\s-]*alimenta[cç][aã]o\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"food_allowance"}, Money: true},
	{RawKey: "plano_saude", Regex: regexp.MustCompile(`(?i)plano\s+(?:de\s+)?sa[uú]de\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"health_insurance"}, Money: true},
	{RawKey: "plano_odontologico", Regex: regexp.MustCompile(`(?i)(?:plano\s+)?odontol[oó]gico\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"dental_insurance"}, Money: true},
	{RawKey: "previdencia_privada", Regex: regexp.MustCompile(`(?i)previd[eê]ncia\s+privada\s*:?\s*(?:R\$)?\s*` + amount), EntityTypes: []string{"private_pension"}, Money: true},
}

var ptPatterns = []FieldPattern{
	{RawKey: "entidade_patronal", Regex: regexp.MustCompile(`(?i)(?:entidade\s+patronal|entidade\s+empregadora|empresa)\s*:?\s+(.{3,80})`), EntityTypes: []string{"employer_name", "supplier_name", "company"}},
	{RawKey: "nipc", Regex: regexp.MustCompile(`(?i)(?:NIPC|NIF\s+da\s+entidade)\s*:?\s*(\d{9})`), EntityTypes: []string{"employer_tax_id", "nipc"}},
	{RawKey: "trabalhador", Regex: regexp.MustCompile(`(?i)(?:trabalhador|colaborador|nome)\s*:?\s+([A-Za-zÀ-ÿ .']{3,60})`), EntityTypes: []string{"employee_name", "person"}},
	{RawKey: "nif", Regex: regexp.MustCompile(`(?i)(?:NIF|contribuinte)\s*:?\s*(\d{9})`), EntityTypes: []string{"employee_tax_id", "nif"}},
	{RawKey: "categoria", Regex: regexp.MustCompile(`(?i)(?:categoria|fun[cç][aã]o)\s*:?\s+([A-Za-zÀ-ÿ /]{3,50})`), EntityTypes: []string{"job_title", "occupation"}},
	{RawKey: "data_admissao", Regex: regexp.MustCompile(`(?i)(?:data\s+de\s+)?admiss[aã]o\s*:?\s*(\d{2}[/-]\d{2}[/-]\d{4})`), EntityTypes: []string{"admission_date", "hire_date"}},
	{RawKey: "periodo", Regex: regexp.MustCompile(`(?i)(?:per[ií]odo|m[eê]s)\s*:?\s*(\d{2}[/-]\d{4})`), EntityTypes: []string{"pay_period", "period"}},
	{RawKey: "vencimento_base", Regex: regexp.MustCompile(`(?i)vencimento(?:\s+base)?\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"gross_amount", "gross_salary"}, Money: true},
	{RawKey: "liquido_a_receber", Regex: regexp.MustCompile(`(?i)(?:l[ií]quido\s+a\s+receber|valor\s+l[ií]quido|total\s+l[ií]quido)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"net_amount", "net_salary"}, Money: true},
	{RawKey: "total_remuneracoes", Regex: regexp.MustCompile(`(?i)total\s+(?:de\s+)?(?:remunera[cç][oõ]es|abonos)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"total_earnings"}, Money: true},
	{RawKey: "total_descontos", Regex: regexp.MustCompile(`(?i)total\s+(?:de\s+)?descontos\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"total_deductions"}, Money: true},
	{RawKey: "seguranca_social", Regex: regexp.MustCompile(`(?i)seguran[cç]a\s+social\s*:?\s*(?:\d{1,2},\d{1,2}\s*%?\s*)?` + amount + `\s*€?`), EntityTypes: []string{"social_security"}, Money: true},
	{RawKey: "irs", Regex: regexp.MustCompile(`(?i)\bIRS\b\s*:?\s*(?:\d{1,2},\d{1,2}\s*%?\s*)?` + amount + `\s*€?`), EntityTypes: []string{"income_tax", "irs"}, Money: true},
	{RawKey: "subsidio_ferias", Regex: regexp.MustCompile(`(?i)subs[ií]dio\s+de\s+f[eé]rias\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"vacation"}, Money: true},
	{RawKey: "subsidio_natal", Regex: regexp.MustCompile(`(?i)subs[ií]dio\s+de\s+natal\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"thirteenth", "christmas"}, Money: true},
	{RawKey: "trabalho_suplementar", Regex: regexp.MustCompile(`(?i)trabalho\s+suplementar\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"overtime"}, Money: true},
	{RawKey: "subsidio_refeicao", Regex: regexp.MustCompile(`(?i)subs[ií]dio\s+de\s+(?:refei[cç][aã]o|alimenta[cç][aã]o)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"meal_allowance", "food_allowance"}, Money: true},
	{RawKey: "seguro_saude", Regex: regexp.MustCompile(`(?i)seguro\s+(?:de\s+)?sa[uú]de\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"health_insurance"}, Money: true},
	{RawKey: "ppr", Regex: regexp.MustCompile(`(?i)(?:PPR|plano\s+poupan[cç]a\s+reforma)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"private_pension"}, Money: true},
}

var frPatterns = []FieldPattern{
	{RawKey: "employeur", Regex: regexp.MustCompile(`(?i)(?:employeur|raison\s+sociale|soci[eé]t[eé])\s*:?\s+(.{3,80})`), EntityTypes: []string{"employer_name", "supplier_name", "company"}},
	{RawKey: "siret", Regex: regexp.MustCompile(`(?i)(?:SIRET|SIREN)\s*:?\s*([\d\s]{9,17})`), EntityTypes: []string{"employer_tax_id", "siret"}},
	{RawKey: "salarie", Regex: regexp.MustCompile(`(?i)(?:salari[eé]|nom\s+du\s+salari[eé])\s*:?\s+([A-Za-zÀ-ÿ .'-]{3,60})`), EntityTypes: []string{"employee_name", "person"}},
	{RawKey: "numero_ss", Regex: regexp.MustCompile(`(?i)(?:n[°o]\s*s[eé]curit[eé]\s+sociale|num[eé]ro\s+SS)\s*:?\s*([\d\s]{13,21})`), EntityTypes: []string{"employee_tax_id"}},
	{RawKey: "poste", Regex: regexp.MustCompile(`(?i)(?:emploi|poste|qualification)\s*:?\s+([A-Za-zÀ-ÿ /'-]{3,50})`), EntityTypes: []string{"job_title", "occupation"}},
	{RawKey: "date_embauche", Regex: regexp.MustCompile(`(?i)date\s+d['e]\s*embauche\s*:?\s*(\d{2}/\d{2}/\d{4})`), EntityTypes: []string{"admission_date", "hire_date"}},
	{RawKey: "periode", Regex: regexp.MustCompile(`(?i)p[eé]riode\s*(?:du)?\s*:?\s*(\d{2}/\d{4})`), EntityTypes: []string{"pay_period", "period"}},
	{RawKey: "salaire_brut", Regex: regexp.MustCompile(`(?i)(?:salaire|total)\s+brut\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"gross_amount", "gross_salary"}, Money: true},
	{RawKey: "net_a_payer", Regex: regexp.MustCompile(`(?i)net\s+[aà]\s+payer\s*(?:avant\s+imp[oô]t)?\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"net_amount", "net_salary"}, Money: true},
	{RawKey: "total_retenues", Regex: regexp.MustCompile(`(?i)total\s+(?:des\s+)?(?:retenues|cotisations)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"total_deductions"}, Money: true},
	{RawKey: "cotisations_sociales", Regex: regexp.MustCompile(`(?i)cotisations\s+sociales\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"social_security"}, Money: true},
	{RawKey: "impot_revenu", Regex: regexp.MustCompile(`(?i)(?:imp[oô]t\s+sur\s+le\s+revenu|pr[eé]l[eè]vement\s+[aà]\s+la\s+source)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"income_tax"}, Money: true},
	{RawKey: "conges_payes", Regex: regexp.MustCompile(`(?i)(?:indemnit[eé]\s+)?cong[eé]s\s+pay[eé]s\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"vacation"}, Money: true},
	{RawKey: "treizieme_mois", Regex: regexp.MustCompile(`(?i)(?:13[eè]?m?e?\s+mois|treizi[eè]me\s+mois)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"thirteenth"}, Money: true},
	{RawKey: "prime", Regex: regexp.MustCompile(`(?i)prime(?:\s+exceptionnelle)?\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"bonus"}, Money: true},
	{RawKey: "heures_supplementaires", Regex: regexp.MustCompile(`(?i)heures\s+suppl[eé]mentaires\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"overtime"}, Money: true},
	{RawKey: "titres_restaurant", Regex: regexp.MustCompile(`(?i)(?:titres?[\s-]restaurant|tickets?[\s-]restaurant)\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"meal_allowance"}, Money: true},
	{RawKey: "mutuelle", Regex: regexp.MustCompile(`(?i)mutuelle\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"health_insurance"}, Money: true},
	{RawKey: "retraite_supplementaire", Regex: regexp.MustCompile(`(?i)retraite\s+suppl[eé]mentaire\s*:?\s*` + amount + `\s*€?`), EntityTypes: []string{"private_pension"}, Money: true},
}

// PatternsFor returns the extraction strategy table for a country. Unknown
// countries get the Brazilian table, matching the mapper's default locale.
func PatternsFor(country string) []FieldPattern {
	switch country {
	case "PT":
		return ptPatterns
	case "FR":
		return frPatterns
	default:
		return brPatterns
	}
}

// EmployerRawKey names the raw field the employer-name positional heuristic
// should fill when both the regex and entity lookups miss.
func EmployerRawKey(country string) string {
	switch country {
	case "PT":
		return "entidade_patronal"
	case "FR":
		return "employeur"
	default:
		return "empresa"
	}
}
