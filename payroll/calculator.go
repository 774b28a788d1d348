package payroll

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonPositiveGross is returned when a calculation is requested for a
// gross salary of zero or less. A negative or zero gross is rejected rather
// than clamped so that nonsense input never produces a plausible-looking
// payslip simulation.
var ErrNonPositiveGross = errors.New("gross salary must be positive")

// Withholding is the amount withheld by one statutory schedule together
// with the rate that applied. For social-security style tables Rate is the
// effective rate (amount / base); for income-tax style tables it is the
// marginal rate of the containing bracket.
type Withholding struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
}

// Rules bundles the per-country, per-year constants a salary calculation
// needs. Cap and deduction values are explicit inputs here, not literals in
// the calculator, so historical years can be recalculated by swapping the
// rules value.
type Rules struct {
	Country              string
	Year                 int
	SocialSecurity       *Schedule
	IncomeTax            *Schedule
	ContributionCap      float64
	DependentDeduction   float64
	StandardMonthlyHours float64
	FamilyAllowanceValue float64
	FamilyAllowanceLimit float64
}

// SalaryInput is one calculation request.
type SalaryInput struct {
	GrossSalary        float64 `json:"gross_salary" binding:"required,gt=0"`
	Dependents         int     `json:"dependents" binding:"gte=0"`
	DependentsUnder14  int     `json:"dependents_under_14" binding:"gte=0"`
	Benefits           float64 `json:"benefits" binding:"gte=0"`
	OvertimeHours      float64 `json:"overtime_hours" binding:"gte=0"`
	OvertimeMultiplier float64 `json:"overtime_multiplier"`
	OtherDeductions    float64 `json:"other_deductions" binding:"gte=0"`
}

// SalaryOutput is the derived monthly result. It is never persisted by the
// calculator itself; callers decide what to store.
type SalaryOutput struct {
	GrossSalary        float64 `json:"gross_salary"`
	TotalEarnings      float64 `json:"total_earnings"`
	OvertimePay        float64 `json:"overtime_pay"`
	FamilyAllowance    float64 `json:"family_allowance"`
	SocialSecurity     float64 `json:"social_security"`
	SocialSecurityRate float64 `json:"social_security_rate"`
	IncomeTax          float64 `json:"income_tax"`
	IncomeTaxRate      float64 `json:"income_tax_rate"`
	OtherDeductions    float64 `json:"other_deductions"`
	TotalDeductions    float64 `json:"total_deductions"`
	NetSalary          float64 `json:"net_salary"`
	NetToGrossRatio    float64 `json:"net_to_gross_ratio"`
}

// ThirteenthOutput is the statutory year-end bonus computed on the bare
// gross salary, without benefits or overtime.
type ThirteenthOutput struct {
	Gross          float64 `json:"gross"`
	SocialSecurity float64 `json:"social_security"`
	IncomeTax      float64 `json:"income_tax"`
	Net            float64 `json:"net"`
}

// AnnualOutput aggregates twelve monthly payments plus the thirteenth.
type AnnualOutput struct {
	GrossAnnual          float64          `json:"gross_annual"`
	NetAnnual            float64          `json:"net_annual"`
	SocialSecurityAnnual float64          `json:"social_security_annual"`
	IncomeTaxAnnual      float64          `json:"income_tax_annual"`
	Thirteenth           ThirteenthOutput `json:"thirteenth"`
}

// SocialSecurityWithholding walks the schedule cumulatively: every slice of
// base that falls inside a bracket is taxed at that bracket's rate and the
// slices are summed, then clamped to the configured cap. No rounding happens
// inside the loop; callers round at presentation time.
func SocialSecurityWithholding(base float64, s *Schedule, cap float64) Withholding {
	if base <= 0 {
		return Withholding{}
	}

	var total float64
	lower := 0.0
	for _, b := range s.brackets {
		upper := base
		if !b.Unbounded() && b.Max < base {
			upper = b.Max
		}
		if upper <= lower {
			break
		}
		total += (upper - lower) * b.Rate
		lower = upper
		if b.Unbounded() || base <= b.Max {
			break
		}
	}

	if cap > 0 {
		total = math.Min(total, cap)
	}
	return Withholding{Amount: total, Rate: total / base}
}

// IncomeTaxWithholding applies the single bracket containing base:
// base * rate - deduction, clamped to zero. A base of zero or less is a
// valid zero-tax outcome, not an error.
func IncomeTaxWithholding(base float64, s *Schedule) Withholding {
	if base <= 0 {
		return Withholding{}
	}
	b := s.containing(base)
	amount := base*b.Rate - b.Deduction
	if amount < 0 {
		amount = 0
	}
	return Withholding{Amount: amount, Rate: b.Rate}
}

// IncomeTaxFromGross derives the taxable base from gross pay before applying
// the income-tax schedule: gross minus the social-security contribution minus
// the per-dependent deduction. A negative base short-circuits to zero tax.
func IncomeTaxFromGross(gross, socialSecurity float64, dependents int, r *Rules) Withholding {
	base := gross - socialSecurity - float64(dependents)*r.DependentDeduction
	return IncomeTaxWithholding(base, r.IncomeTax)
}

// OvertimePay converts gross salary to an hourly rate over the standard
// monthly hours and applies the overtime multiplier.
func OvertimePay(gross, hours, multiplier float64, standardHours float64) float64 {
	if gross <= 0 || hours <= 0 || standardHours <= 0 {
		return 0
	}
	if multiplier <= 0 {
		multiplier = 1.5
	}
	return gross / standardHours * hours * multiplier
}

// FamilyAllowance pays a fixed amount per dependent under fourteen when the
// gross salary is at or below the eligibility ceiling.
func FamilyAllowance(gross float64, under14 int, r *Rules) float64 {
	if under14 <= 0 || r.FamilyAllowanceValue <= 0 {
		return 0
	}
	if r.FamilyAllowanceLimit > 0 && gross > r.FamilyAllowanceLimit {
		return 0
	}
	return float64(under14) * r.FamilyAllowanceValue
}

// CalculateSalary orchestrates the statutory schedules into a full monthly
// result. Social security and income tax are computed on the bare gross;
// benefits, overtime and the family allowance only widen total earnings.
func CalculateSalary(in SalaryInput, r *Rules) (*SalaryOutput, error) {
	if in.GrossSalary <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrNonPositiveGross, in.GrossSalary)
	}

	overtime := OvertimePay(in.GrossSalary, in.OvertimeHours, in.OvertimeMultiplier, r.StandardMonthlyHours)
	allowance := FamilyAllowance(in.GrossSalary, in.DependentsUnder14, r)

	ss := SocialSecurityWithholding(in.GrossSalary, r.SocialSecurity, r.ContributionCap)
	tax := IncomeTaxFromGross(in.GrossSalary, ss.Amount, in.Dependents, r)

	earnings := in.GrossSalary + in.Benefits + overtime + allowance
	deductions := ss.Amount + tax.Amount + in.OtherDeductions
	net := earnings - deductions

	return &SalaryOutput{
		GrossSalary:        in.GrossSalary,
		TotalEarnings:      earnings,
		OvertimePay:        overtime,
		FamilyAllowance:    allowance,
		SocialSecurity:     ss.Amount,
		SocialSecurityRate: ss.Rate,
		IncomeTax:          tax.Amount,
		IncomeTaxRate:      tax.Rate,
		OtherDeductions:    in.OtherDeductions,
		TotalDeductions:    deductions,
		NetSalary:          net,
		NetToGrossRatio:    net / in.GrossSalary,
	}, nil
}

// CalculateThirteenth computes the year-end bonus as a second statutory
// payment over the bare gross salary.
func CalculateThirteenth(gross float64, r *Rules) (*ThirteenthOutput, error) {
	if gross <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrNonPositiveGross, gross)
	}
	ss := SocialSecurityWithholding(gross, r.SocialSecurity, r.ContributionCap)
	tax := IncomeTaxFromGross(gross, ss.Amount, 0, r)
	return &ThirteenthOutput{
		Gross:          gross,
		SocialSecurity: ss.Amount,
		IncomeTax:      tax.Amount,
		Net:            gross - ss.Amount - tax.Amount,
	}, nil
}

// CalculateAnnual aggregates twelve months of the given input plus the
// thirteenth salary.
func CalculateAnnual(in SalaryInput, r *Rules) (*AnnualOutput, error) {
	monthly, err := CalculateSalary(in, r)
	if err != nil {
		return nil, err
	}
	thirteenth, err := CalculateThirteenth(in.GrossSalary, r)
	if err != nil {
		return nil, err
	}
	return &AnnualOutput{
		GrossAnnual:          monthly.GrossSalary*12 + thirteenth.Gross,
		NetAnnual:            monthly.NetSalary*12 + thirteenth.Net,
		SocialSecurityAnnual: monthly.SocialSecurity*12 + thirteenth.SocialSecurity,
		IncomeTaxAnnual:      monthly.IncomeTax*12 + thirteenth.IncomeTax,
		Thirteenth:           *thirteenth,
	}, nil
}
