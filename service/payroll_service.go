package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/dto"
	"github.com/pimfinance/payslip-engine/payroll"
)

// PayrollService resolves the jurisdiction's bracket tables and runs the
// calculators. Country defaults to BR and year to the current year.
type PayrollService struct {
	logger *zap.Logger
}

func NewPayrollService(logger *zap.Logger) *PayrollService {
	return &PayrollService{logger: logger}
}

func resolveRules(country string, year int) (*payroll.Rules, error) {
	if country == "" {
		country = "BR"
	}
	if year == 0 {
		year = time.Now().Year()
	}
	return payroll.RulesFor(country, year)
}

// Calculate runs the monthly net salary breakdown.
func (s *PayrollService) Calculate(req dto.CalculateRequest) (*payroll.SalaryOutput, error) {
	rules, err := resolveRules(req.Country, req.Year)
	if err != nil {
		return nil, err
	}

	out, err := payroll.CalculateSalary(req.SalaryInput, rules)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("salary calculated",
		zap.String("country", rules.Country),
		zap.Int("year", rules.Year),
		zap.Float64("gross", out.GrossSalary),
		zap.Float64("net", out.NetSalary))
	return out, nil
}

// Thirteenth computes the statutory year-end bonus.
func (s *PayrollService) Thirteenth(req dto.ThirteenthRequest) (*payroll.ThirteenthOutput, error) {
	rules, err := resolveRules(req.Country, req.Year)
	if err != nil {
		return nil, err
	}
	return payroll.CalculateThirteenth(req.GrossSalary, rules)
}

// Annual aggregates twelve monthly payments plus the thirteenth.
func (s *PayrollService) Annual(req dto.CalculateRequest) (*payroll.AnnualOutput, error) {
	rules, err := resolveRules(req.Country, req.Year)
	if err != nil {
		return nil, err
	}
	return payroll.CalculateAnnual(req.SalaryInput, rules)
}
