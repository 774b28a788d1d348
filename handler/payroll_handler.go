package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/dto"
	"github.com/pimfinance/payslip-engine/payroll"
	"github.com/pimfinance/payslip-engine/service"
)

type PayrollHandler struct {
	payrollService *service.PayrollService
	logger         *zap.Logger
}

func NewPayrollHandler(payrollService *service.PayrollService, logger *zap.Logger) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		logger:         logger,
	}
}

// Calculate handles POST /payroll/calculate.
func (h *PayrollHandler) Calculate(c *gin.Context) {
	var request dto.CalculateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid calculation request", err)
		return
	}

	output, err := h.payrollService.Calculate(request)
	if err != nil {
		h.sendError(c, h.statusFor(err), "failed to calculate salary", err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Thirteenth handles POST /payroll/thirteenth.
func (h *PayrollHandler) Thirteenth(c *gin.Context) {
	var request dto.ThirteenthRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid thirteenth request", err)
		return
	}

	output, err := h.payrollService.Thirteenth(request)
	if err != nil {
		h.sendError(c, h.statusFor(err), "failed to calculate thirteenth salary", err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Annual handles POST /payroll/annual.
func (h *PayrollHandler) Annual(c *gin.Context) {
	var request dto.CalculateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid annual request", err)
		return
	}

	output, err := h.payrollService.Annual(request)
	if err != nil {
		h.sendError(c, h.statusFor(err), "failed to calculate annual projection", err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// statusFor maps calculator errors onto HTTP statuses. Bad inputs are the
// caller's problem; anything else is ours.
func (h *PayrollHandler) statusFor(err error) int {
	if errors.Is(err, payroll.ErrNonPositiveGross) ||
		errors.Is(err, payroll.ErrInvalidSchedule) ||
		errors.Is(err, payroll.ErrUnsupportedCountry) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *PayrollHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Warn(message, zap.Error(err))
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "CALCULATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
