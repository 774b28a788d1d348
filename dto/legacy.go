package dto

import (
	"time"

	"github.com/pimfinance/payslip-engine/payslip"
)

// LegacyPayslip is the flat shape the pre-existing dashboard and storage
// code consume. It predates the canonical record and cannot express an
// unknown value: every financial field defaults to 0 and every text field
// to "". Kept purely as a compatibility seam; new code should work with the
// canonical record and convert at the boundary.
type LegacyPayslip struct {
	CompanyName     string  `json:"company_name"`
	CompanyTaxID    string  `json:"company_tax_id"`
	EmployeeName    string  `json:"employee_name"`
	EmployeeTaxID   string  `json:"employee_tax_id"`
	Position        string  `json:"position"`
	AdmissionDate   string  `json:"admission_date"`
	ReferenceMonth  string  `json:"reference_month"`
	GrossSalary     float64 `json:"gross_salary"`
	NetSalary       float64 `json:"net_salary"`
	TotalEarnings   float64 `json:"total_earnings"`
	TotalDeductions float64 `json:"total_deductions"`
	INSS            float64 `json:"inss"`
	IRRF            float64 `json:"irrf"`
	FGTS            float64 `json:"fgts"`
	MealAllowance   float64 `json:"meal_allowance"`
	HealthInsurance float64 `json:"health_insurance"`
	Country         string  `json:"country"`
	Confidence      float64 `json:"confidence"`
}

// ToLegacy and FromLegacy bridge the canonical record and the flat shape
// older consumers still read. Both are pure and total: they never fail,
// whatever the input. The conversion is lossy: canonical fields without a
// legacy column (period end, fund base, vacation, thirteenth,
// bonus, overtime, food/dental/pension benefits) are dropped, and because
// the legacy shape cannot express "unknown", nil maps to the zero value and
// a legacy zero maps back to nil.

// ToLegacy flattens a canonical record into the legacy shape.
func ToLegacy(e *payslip.Extracted) LegacyPayslip {
	if e == nil {
		return LegacyPayslip{}
	}
	return LegacyPayslip{
		CompanyName:     strOrEmpty(e.EmployerName),
		CompanyTaxID:    strOrEmpty(e.EmployerTaxID),
		EmployeeName:    strOrEmpty(e.EmployeeName),
		EmployeeTaxID:   strOrEmpty(e.EmployeeTaxID),
		Position:        strOrEmpty(e.JobTitle),
		AdmissionDate:   strOrEmpty(e.AdmissionDate),
		ReferenceMonth:  strOrEmpty(e.PeriodStart),
		GrossSalary:     numOrZero(e.GrossSalary),
		NetSalary:       numOrZero(e.NetSalary),
		TotalEarnings:   numOrZero(e.TotalEarnings),
		TotalDeductions: numOrZero(e.TotalDeductions),
		INSS:            numOrZero(e.SocialSecurity),
		IRRF:            numOrZero(e.IncomeTax),
		FGTS:            numOrZero(e.FundDeposit),
		MealAllowance:   numOrZero(e.MealAllowance),
		HealthInsurance: numOrZero(e.HealthInsurance),
		Country:         string(e.Country),
		Confidence:      e.Confidence,
	}
}

// FromLegacy lifts a legacy row back into the canonical schema. Fields the
// legacy shape never carried stay nil.
func FromLegacy(l LegacyPayslip) *payslip.Extracted {
	country := payslip.CountryBR
	if c, err := payslip.ParseCountry(l.Country); err == nil {
		country = c
	}

	e := &payslip.Extracted{
		EmployerName:    emptyToNil(l.CompanyName),
		EmployerTaxID:   emptyToNil(l.CompanyTaxID),
		EmployeeName:    emptyToNil(l.EmployeeName),
		EmployeeTaxID:   emptyToNil(l.EmployeeTaxID),
		JobTitle:        emptyToNil(l.Position),
		AdmissionDate:   emptyToNil(l.AdmissionDate),
		PeriodStart:     emptyToNil(l.ReferenceMonth),
		GrossSalary:     zeroToNil(l.GrossSalary),
		NetSalary:       zeroToNil(l.NetSalary),
		TotalEarnings:   zeroToNil(l.TotalEarnings),
		TotalDeductions: zeroToNil(l.TotalDeductions),
		SocialSecurity:  zeroToNil(l.INSS),
		IncomeTax:       zeroToNil(l.IRRF),
		FundDeposit:     zeroToNil(l.FGTS),
		MealAllowance:   zeroToNil(l.MealAllowance),
		HealthInsurance: zeroToNil(l.HealthInsurance),
		Country:         country,
		Method:          payslip.MethodHybrid,
		ExtractedAt:     time.Now().UTC(),
	}
	e.Confidence = l.Confidence
	if e.Confidence == 0 {
		e.Confidence = payslip.Confidence(e)
	}
	return e
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func numOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func zeroToNil(f float64) *float64 {
	if f <= 0 {
		return nil
	}
	return &f
}
