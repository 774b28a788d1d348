package dto

import (
	"github.com/pimfinance/payslip-engine/explain"
	"github.com/pimfinance/payslip-engine/payslip"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DocumentQuality describes how the text was obtained and how much to trust
// it. Source is "pdf_text" for digital PDFs, "ocr" for scanned pages and
// uploaded images. OCRConfidence is the mean word confidence (0-100) and is
// zero for digital text. QRPayload carries the decoded authenticity code
// when the document embeds one.
type DocumentQuality struct {
	Source        string   `json:"source"`
	OCRConfidence float64  `json:"ocr_confidence"`
	Pages         int      `json:"pages"`
	QRFound       bool     `json:"qr_found"`
	QRPayload     string   `json:"qr_payload,omitempty"`
	Issues        []string `json:"issues,omitempty"`
}

// ScanResponse is the full result of one payslip scan: the canonical record,
// the flat legacy view, the plain-language report and the quality block.
type ScanResponse struct {
	ID          string            `json:"id"`
	Payslip     payslip.Extracted `json:"payslip"`
	Legacy      LegacyPayslip     `json:"legacy"`
	Report      explain.Report    `json:"report"`
	Quality     DocumentQuality   `json:"quality"`
	ProcessedAt string            `json:"processed_at"`
}

// PayslipSummary is one row of the stored-payslip listing.
type PayslipSummary struct {
	ID           string  `json:"id"`
	Country      string  `json:"country"`
	EmployeeName string  `json:"employee_name"`
	Period       string  `json:"period"`
	NetSalary    float64 `json:"net_salary"`
	Confidence   float64 `json:"confidence"`
	Method       string  `json:"method"`
	CreatedAt    string  `json:"created_at"`
}

// PayslipListResponse wraps the listing.
type PayslipListResponse struct {
	Payslips []PayslipSummary `json:"payslips"`
	Total    int              `json:"total"`
}
