package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pimfinance/payslip-engine/payslip"
)

// PayslipRecord is the persisted form of a scan: a handful of indexed
// columns for listing and filtering, plus the full canonical record as a
// JSON payload.
type PayslipRecord struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Country      string `gorm:"index;size:2"`
	EmployeeName string `gorm:"index"`
	Period       string `gorm:"index"`
	NetSalary    float64
	Confidence   float64
	Method       string    `gorm:"size:16"`
	Payload      []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (PayslipRecord) TableName() string {
	return "payslips"
}

// Repository stores scanned payslips in Postgres.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository opens the database and migrates the schema. Callers that
// run without a DSN should not construct a repository at all.
func NewRepository(dsn string, logger *zap.Logger) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&PayslipRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Repository{db: db, logger: logger}, nil
}

// Save persists one canonical record and returns the generated id.
func (r *Repository) Save(ctx context.Context, e *payslip.Extracted) (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payslip: %w", err)
	}

	rec := PayslipRecord{
		ID:         uuid.NewString(),
		Country:    string(e.Country),
		Confidence: e.Confidence,
		Method:     string(e.Method),
		Payload:    payload,
	}
	if e.EmployeeName != nil {
		rec.EmployeeName = *e.EmployeeName
	}
	if e.PeriodStart != nil {
		rec.Period = *e.PeriodStart
	}
	if e.NetSalary != nil {
		rec.NetSalary = *e.NetSalary
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("failed to insert payslip: %w", err)
	}

	r.logger.Info("payslip stored",
		zap.String("id", rec.ID),
		zap.String("country", rec.Country),
		zap.Float64("confidence", rec.Confidence))
	return rec.ID, nil
}

// List returns the most recent records, optionally filtered by country.
func (r *Repository) List(ctx context.Context, country string, limit int) ([]PayslipRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if country != "" {
		q = q.Where("country = ?", country)
	}

	var records []PayslipRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return records, nil
}

// Get loads one record with its full canonical payload.
func (r *Repository) Get(ctx context.Context, id string) (*payslip.Extracted, error) {
	var rec PayslipRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load payslip %s: %w", id, err)
	}

	var e payslip.Extracted
	if err := json.Unmarshal(rec.Payload, &e); err != nil {
		return nil, fmt.Errorf("failed to decode payslip payload: %w", err)
	}
	return &e, nil
}
