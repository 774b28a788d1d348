package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/client"
	"github.com/pimfinance/payslip-engine/config"
	"github.com/pimfinance/payslip-engine/handler"
	"github.com/pimfinance/payslip-engine/service"
	"github.com/pimfinance/payslip-engine/storage"
)

func main() {
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguages, logger)
	defer tesseractClient.Close()

	docaiClient := client.NewDocAIClient(cfg.DocAIBaseURL, cfg.DocAITimeout, logger)
	if docaiClient.Enabled() {
		logger.Info("entity detection enabled", zap.String("endpoint", cfg.DocAIBaseURL))
	} else {
		logger.Info("entity detection disabled, extraction runs on patterns only")
	}

	pdfProcessor := service.NewPDFProcessor()

	// Persistence is optional; without a DSN scans are returned but not kept.
	var store service.PayslipStore
	if cfg.DatabaseDSN != "" {
		repo, err := storage.NewRepository(cfg.DatabaseDSN, logger)
		if err != nil {
			logger.Fatal("failed to initialize storage", zap.Error(err))
		}
		store = repo
		logger.Info("payslip storage enabled")
	} else {
		logger.Info("payslip storage disabled")
	}

	scanService := service.NewScanService(tesseractClient, pdfProcessor, docaiClient, store, logger, cfg.MinTextLength)
	payrollService := service.NewPayrollService(logger)

	scanHandler := handler.NewScanHandler(scanService, cfg.MaxFileSize, logger)
	payrollHandler := handler.NewPayrollHandler(payrollService, logger)

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Payslip Engine",
		})
	})

	api := router.Group("/api/v1")
	{
		payslips := api.Group("/payslips")
		{
			payslips.POST("/scan", scanHandler.ScanPayslip)
			payslips.GET("", scanHandler.ListPayslips)
		}

		payroll := api.Group("/payroll")
		{
			payroll.POST("/calculate", payrollHandler.Calculate)
			payroll.POST("/thirteenth", payrollHandler.Thirteenth)
			payroll.POST("/annual", payrollHandler.Annual)
		}
	}

	logger.Info("starting payslip engine", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
