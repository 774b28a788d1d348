package payslip

import (
	"fmt"
	"strings"
	"time"
)

// Country is the closed set of payslip locales the mapper understands.
type Country string

const (
	CountryBR Country = "BR"
	CountryPT Country = "PT"
	CountryFR Country = "FR"
)

// ParseCountry validates a country code from an API request or stored row.
func ParseCountry(s string) (Country, error) {
	switch Country(strings.ToUpper(strings.TrimSpace(s))) {
	case CountryBR:
		return CountryBR, nil
	case CountryPT:
		return CountryPT, nil
	case CountryFR:
		return CountryFR, nil
	default:
		return "", fmt.Errorf("unsupported country %q", s)
	}
}

// Method records which extraction strategy produced a record.
type Method string

const (
	MethodRegex  Method = "regex"
	MethodEntity Method = "entity"
	MethodHybrid Method = "hybrid"
)

// Extracted is the canonical, country-agnostic payslip record. Every field
// is nullable: nil means the extractor could not find a value, which is a
// routine outcome and distinct from zero. Financial fields are non-negative
// or nil, never negative. Records are write-once; a correction produces a
// new record rather than mutating this one.
type Extracted struct {
	// Administrative identity.
	EmployerName  *string `json:"employer_name"`
	EmployerTaxID *string `json:"employer_tax_id"`
	EmployeeName  *string `json:"employee_name"`
	EmployeeTaxID *string `json:"employee_tax_id"`
	JobTitle      *string `json:"job_title"`
	AdmissionDate *string `json:"admission_date"`
	PeriodStart   *string `json:"period_start"`
	PeriodEnd     *string `json:"period_end"`

	// Core financials.
	GrossSalary     *float64 `json:"gross_salary"`
	NetSalary       *float64 `json:"net_salary"`
	TotalEarnings   *float64 `json:"total_earnings"`
	TotalDeductions *float64 `json:"total_deductions"`

	// Statutory withholdings. The payroll-fund fields only apply to
	// countries with such a fund (FGTS in Brazil) and stay nil elsewhere.
	SocialSecurity *float64 `json:"social_security"`
	IncomeTax      *float64 `json:"income_tax"`
	FundBase       *float64 `json:"fund_base"`
	FundDeposit    *float64 `json:"fund_deposit"`

	// Vacation, bonus and overtime items.
	VacationPay      *float64 `json:"vacation_pay"`
	ThirteenthSalary *float64 `json:"thirteenth_salary"`
	Bonus            *float64 `json:"bonus"`
	OvertimePay      *float64 `json:"overtime_pay"`

	// Benefits.
	MealAllowance   *float64 `json:"meal_allowance"`
	FoodAllowance   *float64 `json:"food_allowance"`
	HealthInsurance *float64 `json:"health_insurance"`
	DentalInsurance *float64 `json:"dental_insurance"`
	PrivatePension  *float64 `json:"private_pension"`

	// Metadata, excluded from confidence scoring.
	Country     Country   `json:"country"`
	Confidence  float64   `json:"confidence"`
	Method      Method    `json:"method"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Canonical field names, shared by the synonym tables, the importance
// weights and the legacy converters.
const (
	FieldEmployerName     = "employer_name"
	FieldEmployerTaxID    = "employer_tax_id"
	FieldEmployeeName     = "employee_name"
	FieldEmployeeTaxID    = "employee_tax_id"
	FieldJobTitle         = "job_title"
	FieldAdmissionDate    = "admission_date"
	FieldPeriodStart      = "period_start"
	FieldPeriodEnd        = "period_end"
	FieldGrossSalary      = "gross_salary"
	FieldNetSalary        = "net_salary"
	FieldTotalEarnings    = "total_earnings"
	FieldTotalDeductions  = "total_deductions"
	FieldSocialSecurity   = "social_security"
	FieldIncomeTax        = "income_tax"
	FieldFundBase         = "fund_base"
	FieldFundDeposit      = "fund_deposit"
	FieldVacationPay      = "vacation_pay"
	FieldThirteenthSalary = "thirteenth_salary"
	FieldBonus            = "bonus"
	FieldOvertimePay      = "overtime_pay"
	FieldMealAllowance    = "meal_allowance"
	FieldFoodAllowance    = "food_allowance"
	FieldHealthInsurance  = "health_insurance"
	FieldDentalInsurance  = "dental_insurance"
	FieldPrivatePension   = "private_pension"
)

// fieldSpec wires one canonical field into the generic mapping machinery:
// its importance weight for confidence scoring, whether it carries money,
// and typed accessors into Extracted.
type fieldSpec struct {
	name    string
	numeric bool
	weight  int
	present func(*Extracted) bool
	setStr  func(*Extracted, string)
	setNum  func(*Extracted, float64)
}

func strField(name string, weight int, get func(*Extracted) **string) fieldSpec {
	return fieldSpec{
		name:    name,
		weight:  weight,
		present: func(e *Extracted) bool { return *get(e) != nil },
		setStr:  func(e *Extracted, s string) { *get(e) = &s },
	}
}

func numField(name string, weight int, get func(*Extracted) **float64) fieldSpec {
	return fieldSpec{
		name:    name,
		numeric: true,
		weight:  weight,
		present: func(e *Extracted) bool { return *get(e) != nil },
		setNum:  func(e *Extracted, v float64) { *get(e) = &v },
	}
}

// fieldSpecs is the single source of truth over the canonical fields. The
// weights skew toward the figures the rest of the application depends on:
// core financials and statutory withholdings dominate, identity comes next,
// individual benefit lines barely move the score.
var fieldSpecs = []fieldSpec{
	strField(FieldEmployerName, 7, func(e *Extracted) **string { return &e.EmployerName }),
	strField(FieldEmployerTaxID, 4, func(e *Extracted) **string { return &e.EmployerTaxID }),
	strField(FieldEmployeeName, 8, func(e *Extracted) **string { return &e.EmployeeName }),
	strField(FieldEmployeeTaxID, 4, func(e *Extracted) **string { return &e.EmployeeTaxID }),
	strField(FieldJobTitle, 3, func(e *Extracted) **string { return &e.JobTitle }),
	strField(FieldAdmissionDate, 3, func(e *Extracted) **string { return &e.AdmissionDate }),
	strField(FieldPeriodStart, 5, func(e *Extracted) **string { return &e.PeriodStart }),
	strField(FieldPeriodEnd, 5, func(e *Extracted) **string { return &e.PeriodEnd }),
	numField(FieldGrossSalary, 10, func(e *Extracted) **float64 { return &e.GrossSalary }),
	numField(FieldNetSalary, 10, func(e *Extracted) **float64 { return &e.NetSalary }),
	numField(FieldTotalEarnings, 6, func(e *Extracted) **float64 { return &e.TotalEarnings }),
	numField(FieldTotalDeductions, 6, func(e *Extracted) **float64 { return &e.TotalDeductions }),
	numField(FieldSocialSecurity, 8, func(e *Extracted) **float64 { return &e.SocialSecurity }),
	numField(FieldIncomeTax, 8, func(e *Extracted) **float64 { return &e.IncomeTax }),
	numField(FieldFundBase, 3, func(e *Extracted) **float64 { return &e.FundBase }),
	numField(FieldFundDeposit, 3, func(e *Extracted) **float64 { return &e.FundDeposit }),
	numField(FieldVacationPay, 2, func(e *Extracted) **float64 { return &e.VacationPay }),
	numField(FieldThirteenthSalary, 2, func(e *Extracted) **float64 { return &e.ThirteenthSalary }),
	numField(FieldBonus, 2, func(e *Extracted) **float64 { return &e.Bonus }),
	numField(FieldOvertimePay, 2, func(e *Extracted) **float64 { return &e.OvertimePay }),
	numField(FieldMealAllowance, 2, func(e *Extracted) **float64 { return &e.MealAllowance }),
	numField(FieldFoodAllowance, 2, func(e *Extracted) **float64 { return &e.FoodAllowance }),
	numField(FieldHealthInsurance, 2, func(e *Extracted) **float64 { return &e.HealthInsurance }),
	numField(FieldDentalInsurance, 1, func(e *Extracted) **float64 { return &e.DentalInsurance }),
	numField(FieldPrivatePension, 2, func(e *Extracted) **float64 { return &e.PrivatePension }),
}
