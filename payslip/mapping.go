package payslip

// synonyms lists, per country, the ordered raw field names that may carry
// each canonical field in that country's extraction output. Earlier entries
// win. A canonical field with no entry for a country is not applicable
// there and always normalizes to nil; that is a fact about the payslip
// format, not a mapping error.
var synonyms = map[Country]map[string][]string{
	CountryBR: {
		FieldEmployerName:     {"empresa", "empregador", "razao_social"},
		FieldEmployerTaxID:    {"cnpj"},
		FieldEmployeeName:     {"funcionario", "colaborador", "nome"},
		FieldEmployeeTaxID:    {"cpf"},
		FieldJobTitle:         {"cargo", "funcao"},
		FieldAdmissionDate:    {"data_admissao", "admissao"},
		FieldPeriodStart:      {"periodo_inicio", "competencia"},
		FieldPeriodEnd:        {"periodo_fim", "competencia"},
		FieldGrossSalary:      {"salario_bruto", "salario_base", "vencimento_base"},
		FieldNetSalary:        {"salario_liquido", "liquido", "valor_liquido"},
		FieldTotalEarnings:    {"total_vencimentos", "total_proventos"},
		FieldTotalDeductions:  {"total_descontos"},
		FieldSocialSecurity:   {"inss", "desconto_inss"},
		FieldIncomeTax:        {"irrf", "imposto_renda"},
		FieldFundBase:         {"base_fgts"},
		FieldFundDeposit:      {"fgts_mes", "fgts"},
		FieldVacationPay:      {"ferias", "terco_ferias"},
		FieldThirteenthSalary: {"decimo_terceiro", "13_salario"},
		FieldBonus:            {"bonus", "premiacao", "gratificacao"},
		FieldOvertimePay:      {"horas_extras", "hora_extra"},
		FieldMealAllowance:    {"vale_refeicao"},
		FieldFoodAllowance:    {"vale_alimentacao", "cesta_basica"},
		FieldHealthInsurance:  {"plano_saude", "assistencia_medica"},
		FieldDentalInsurance:  {"plano_odontologico"},
		FieldPrivatePension:   {"previdencia_privada"},
	},
	CountryPT: {
		FieldEmployerName:     {"entidade_patronal", "entidade_empregadora", "empresa"},
		FieldEmployerTaxID:    {"nipc"},
		FieldEmployeeName:     {"trabalhador", "colaborador", "nome"},
		FieldEmployeeTaxID:    {"nif", "contribuinte"},
		FieldJobTitle:         {"categoria", "funcao"},
		FieldAdmissionDate:    {"data_admissao"},
		FieldPeriodStart:      {"periodo_inicio", "periodo"},
		FieldPeriodEnd:        {"periodo_fim", "periodo"},
		FieldGrossSalary:      {"vencimento_base", "vencimento", "salario_base"},
		FieldNetSalary:        {"liquido_a_receber", "valor_liquido", "total_liquido"},
		FieldTotalEarnings:    {"total_remuneracoes", "total_abonos"},
		FieldTotalDeductions:  {"total_descontos"},
		FieldSocialSecurity:   {"seguranca_social", "tsu"},
		FieldIncomeTax:        {"irs", "retencao_irs"},
		FieldVacationPay:      {"subsidio_ferias"},
		FieldThirteenthSalary: {"subsidio_natal"},
		FieldBonus:            {"premio", "gratificacao"},
		FieldOvertimePay:      {"trabalho_suplementar", "horas_extraordinarias"},
		FieldMealAllowance:    {"subsidio_refeicao"},
		FieldFoodAllowance:    {"subsidio_alimentacao"},
		FieldHealthInsurance:  {"seguro_saude"},
		FieldDentalInsurance:  {"seguro_dentario"},
		FieldPrivatePension:   {"ppr", "plano_poupanca_reforma"},
	},
	CountryFR: {
		FieldEmployerName:     {"employeur", "raison_sociale", "societe"},
		FieldEmployerTaxID:    {"siret", "siren"},
		FieldEmployeeName:     {"salarie", "nom"},
		FieldEmployeeTaxID:    {"numero_ss", "numero_securite_sociale"},
		FieldJobTitle:         {"poste", "emploi", "qualification"},
		FieldAdmissionDate:    {"date_embauche"},
		FieldPeriodStart:      {"periode_debut", "periode"},
		FieldPeriodEnd:        {"periode_fin", "periode"},
		FieldGrossSalary:      {"salaire_brut", "brut"},
		FieldNetSalary:        {"net_a_payer", "net_paye"},
		FieldTotalEarnings:    {"total_brut"},
		FieldTotalDeductions:  {"total_retenues", "total_cotisations"},
		FieldSocialSecurity:   {"cotisations_sociales", "securite_sociale"},
		FieldIncomeTax:        {"impot_revenu", "prelevement_source"},
		FieldVacationPay:      {"conges_payes", "indemnite_conges"},
		FieldThirteenthSalary: {"treizieme_mois"},
		FieldBonus:            {"prime"},
		FieldOvertimePay:      {"heures_supplementaires"},
		FieldMealAllowance:    {"titres_restaurant", "tickets_restaurant"},
		FieldHealthInsurance:  {"mutuelle"},
		FieldPrivatePension:   {"retraite_supplementaire"},
	},
}

// synonymsFor returns the table for a country, defaulting to Brazil, which
// keeps the mapper total over the Country type.
func synonymsFor(country Country) map[string][]string {
	if table, ok := synonyms[country]; ok {
		return table
	}
	return synonyms[CountryBR]
}
