package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/dto"
	"github.com/pimfinance/payslip-engine/payslip"
	"github.com/pimfinance/payslip-engine/service"
)

type ScanHandler struct {
	scanService *service.ScanService
	maxFileSize int64
	logger      *zap.Logger
}

func NewScanHandler(scanService *service.ScanService, maxFileSize int64, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ScanPayslip handles POST /payslips/scan.
func (h *ScanHandler) ScanPayslip(c *gin.Context) {
	var request dto.ScanRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid scan request", err)
		return
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid scan request", err)
		return
	}

	country := payslip.CountryBR
	if request.Country != "" {
		parsed, err := payslip.ParseCountry(request.Country)
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "unsupported country", err)
			return
		}
		country = parsed
	}

	file, err := request.File.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to read uploaded file", err)
		return
	}

	h.logger.Info("scan request received",
		zap.String("filename", request.File.Filename),
		zap.Int64("size", request.File.Size),
		zap.String("country", string(country)))

	response, err := h.scanService.ScanPayslip(c.Request.Context(), data, request.File.Filename, country, request.Password)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "failed to scan payslip", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListPayslips handles GET /payslips.
func (h *ScanHandler) ListPayslips(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	response, err := h.scanService.ListPayslips(c.Request.Context(), c.Query("country"), limit)
	if err != nil {
		if err == service.ErrNoStorage {
			h.sendError(c, http.StatusNotImplemented, "storage is not configured", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "failed to list payslips", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ScanHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Warn(message, zap.Error(err))
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "SCAN_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
