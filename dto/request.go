package dto

import (
	"errors"
	"mime/multipart"

	"github.com/pimfinance/payslip-engine/payroll"
)

// ScanRequest carries one uploaded payslip. Country selects the pattern
// table and field mapping; it defaults to BR when omitted. Password is for
// protected PDFs.
type ScanRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Country  string                `form:"country"`
	Password string                `form:"password"`
}

// Validate performs the checks gin's binding tags cannot express.
func (r *ScanRequest) Validate(maxFileSize int64) error {
	if r.File == nil {
		return errors.New("file is required")
	}
	if r.File.Size == 0 {
		return errors.New("file is empty")
	}
	if maxFileSize > 0 && r.File.Size > maxFileSize {
		return errors.New("file exceeds the maximum allowed size")
	}
	return nil
}

// ThirteenthRequest asks for the statutory year-end bonus on a bare gross.
type ThirteenthRequest struct {
	GrossSalary float64 `json:"gross_salary" binding:"required,gt=0"`
	Country     string  `json:"country"`
	Year        int     `json:"year"`
}

// CalculateRequest wraps a salary calculation with its jurisdiction. Country
// defaults to BR and year to the current year when omitted.
type CalculateRequest struct {
	payroll.SalaryInput
	Country string `json:"country"`
	Year    int    `json:"year"`
}
