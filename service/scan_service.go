package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/dto"
	"github.com/pimfinance/payslip-engine/explain"
	"github.com/pimfinance/payslip-engine/extract"
	"github.com/pimfinance/payslip-engine/payslip"
	"github.com/pimfinance/payslip-engine/storage"
)

// ErrNoStorage is returned by listing operations when the service runs
// without a database.
var ErrNoStorage = errors.New("payslip storage is not configured")

// OCRClient is the local OCR dependency.
type OCRClient interface {
	ExtractFromImage(img image.Image) (string, float64, error)
}

// EntityDetector is the optional document-AI dependency backing up the
// regex pass.
type EntityDetector interface {
	Enabled() bool
	DetectEntities(ctx context.Context, content []byte, mimeType, language string) ([]extract.Entity, error)
}

// PayslipStore persists scan results.
type PayslipStore interface {
	Save(ctx context.Context, e *payslip.Extracted) (string, error)
	List(ctx context.Context, country string, limit int) ([]storage.PayslipRecord, error)
}

// ScanService turns an uploaded payslip into a canonical record: text
// acquisition (digital PDF text layer, OCR fallback for scans), hybrid
// regex and entity field extraction, normalization, explanation, and
// optional persistence.
type ScanService struct {
	ocr        OCRClient
	pdf        PDFProcessor
	entities   EntityDetector
	store      PayslipStore
	logger     *zap.Logger
	minTextLen int
}

func NewScanService(
	ocr OCRClient,
	pdf PDFProcessor,
	entities EntityDetector,
	store PayslipStore,
	logger *zap.Logger,
	minTextLen int,
) *ScanService {
	if minTextLen <= 0 {
		minTextLen = 40
	}
	return &ScanService{
		ocr:        ocr,
		pdf:        pdf,
		entities:   entities,
		store:      store,
		logger:     logger,
		minTextLen: minTextLen,
	}
}

// ScanPayslip runs the full pipeline over one uploaded document.
func (s *ScanService) ScanPayslip(ctx context.Context, data []byte, filename string, country payslip.Country, password string) (*dto.ScanResponse, error) {
	text, images, quality, err := s.acquireText(data, filename, password)
	if err != nil {
		return nil, err
	}

	if payload, ok := firstQRPayload(images); ok {
		quality.QRFound = true
		quality.QRPayload = payload
	}

	ents := s.detectEntities(ctx, data, filename, country, &quality)

	raw, method := s.extractFields(text, country, ents)

	rec := payslip.NormalizeRaw(raw, country)
	rec.Method = method

	s.logger.Info("payslip scanned",
		zap.String("filename", filename),
		zap.String("country", string(country)),
		zap.String("method", string(rec.Method)),
		zap.String("source", quality.Source),
		zap.Float64("confidence", rec.Confidence),
		zap.Int("fields", len(raw)))

	id := s.persist(ctx, rec, &quality)

	return &dto.ScanResponse{
		ID:          id,
		Payslip:     *rec,
		Legacy:      dto.ToLegacy(rec),
		Report:      explain.Generate(rec),
		Quality:     quality,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// acquireText resolves the document into plain text. Digital PDFs keep
// their text layer; scanned PDFs and plain images go through OCR.
func (s *ScanService) acquireText(data []byte, filename, password string) (string, []image.Image, dto.DocumentQuality, error) {
	quality := dto.DocumentQuality{}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := s.pdf.ExtractText(data, password)
		if err != nil {
			s.logger.Warn("pdf text extraction failed", zap.String("filename", filename), zap.Error(err))
			quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
		}

		if len(strings.TrimSpace(text)) >= s.minTextLen {
			quality.Source = "pdf_text"
			// Page images are still wanted for the QR pass; a PDF
			// without embedded images is not an issue.
			images, imgErr := s.pdf.ExtractImages(data, password)
			if imgErr != nil {
				images = nil
			}
			return text, images, quality, nil
		}

		if err == nil {
			quality.Issues = append(quality.Issues, "pdf_text_layer_thin")
		}

		images, err := s.pdf.ExtractImages(data, password)
		if err != nil {
			return "", nil, quality, fmt.Errorf("document has no readable text or pages: %w", err)
		}
		if len(images) == 0 {
			return "", nil, quality, errors.New("document has no readable text or pages")
		}

		text, conf, err := s.ocrPages(images)
		if err != nil {
			return "", nil, quality, err
		}
		quality.Source = "ocr"
		quality.OCRConfidence = conf
		quality.Pages = len(images)
		return text, images, quality, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, quality, fmt.Errorf("unsupported file type %q: %w", filepath.Ext(filename), err)
	}

	text, conf, err := s.ocr.ExtractFromImage(img)
	if err != nil {
		return "", nil, quality, fmt.Errorf("OCR extraction failed: %w", err)
	}
	quality.Source = "ocr"
	quality.OCRConfidence = conf
	quality.Pages = 1
	return text, []image.Image{img}, quality, nil
}

// ocrPages runs OCR over every page and averages the word confidence.
func (s *ScanService) ocrPages(images []image.Image) (string, float64, error) {
	var textBuilder strings.Builder
	var totalConf float64
	var pages int

	for idx, page := range images {
		pageText, conf, err := s.ocr.ExtractFromImage(page)
		if err != nil {
			s.logger.Warn("page OCR failed", zap.Int("page", idx+1), zap.Error(err))
			continue
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
		totalConf += conf
		pages++
	}

	if pages == 0 {
		return "", 0, errors.New("OCR produced no text on any page")
	}
	return textBuilder.String(), totalConf / float64(pages), nil
}

func (s *ScanService) detectEntities(ctx context.Context, data []byte, filename string, country payslip.Country, quality *dto.DocumentQuality) []extract.Entity {
	if s.entities == nil || !s.entities.Enabled() {
		return nil
	}

	lang := "pt"
	if country == payslip.CountryFR {
		lang = "fr"
	}

	ents, err := s.entities.DetectEntities(ctx, data, mimeTypeFor(filename), lang)
	if err != nil {
		s.logger.Warn("entity detection failed", zap.Error(err))
		quality.Issues = append(quality.Issues, "entity_detection_failed")
		return nil
	}
	return ents
}

// extractFields runs the country pattern table over the text with the
// entity fallback, and reports which method produced the record: regex
// when the patterns did all the work, entity when only the fallback hit,
// hybrid when both contributed. Values stay in their raw locale form here;
// normalization owns the one and only money coercion.
func (s *ScanService) extractFields(text string, country payslip.Country, ents []extract.Entity) (map[string]any, payslip.Method) {
	lines := splitLines(text)

	raw := make(map[string]any)
	var regexHits, entityHits int

	for _, p := range extract.PatternsFor(string(country)) {
		val, source := extract.Field(lines, p.Regex, p.EntityTypes, ents, nil)
		if val == "" {
			continue
		}
		raw[p.RawKey] = val

		if source == extract.SourceEntity {
			entityHits++
		} else {
			regexHits++
		}
	}

	// Header layouts often print the employer name without a label; the
	// line above the tax id is the positional fallback.
	employerKey := extract.EmployerRawKey(string(country))
	if _, ok := raw[employerKey]; !ok {
		if name := extract.EmployerNearTaxID(lines); name != "" {
			raw[employerKey] = name
			regexHits++
		}
	}

	method := payslip.MethodRegex
	switch {
	case regexHits > 0 && entityHits > 0:
		method = payslip.MethodHybrid
	case entityHits > 0:
		method = payslip.MethodEntity
	}
	return raw, method
}

// persist stores the record when a database is configured. A storage
// failure downgrades to a quality issue; the scan result is still returned.
func (s *ScanService) persist(ctx context.Context, rec *payslip.Extracted, quality *dto.DocumentQuality) string {
	if s.store == nil {
		return uuid.NewString()
	}

	id, err := s.store.Save(ctx, rec)
	if err != nil {
		s.logger.Error("failed to store payslip", zap.Error(err))
		quality.Issues = append(quality.Issues, "persistence_failed")
		return uuid.NewString()
	}
	return id
}

// ListPayslips returns stored scan summaries, newest first.
func (s *ScanService) ListPayslips(ctx context.Context, country string, limit int) (*dto.PayslipListResponse, error) {
	if s.store == nil {
		return nil, ErrNoStorage
	}

	records, err := s.store.List(ctx, country, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.PayslipListResponse{
		Payslips: make([]dto.PayslipSummary, 0, len(records)),
		Total:    len(records),
	}
	for _, rec := range records {
		resp.Payslips = append(resp.Payslips, dto.PayslipSummary{
			ID:           rec.ID,
			Country:      rec.Country,
			EmployeeName: rec.EmployeeName,
			Period:       rec.Period,
			NetSalary:    rec.NetSalary,
			Confidence:   rec.Confidence,
			Method:       rec.Method,
			CreatedAt:    rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func mimeTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
