package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/extract"
	"github.com/pimfinance/payslip-engine/payslip"
	"github.com/pimfinance/payslip-engine/storage"
)

const brPayslipText = `Acme Indústria e Comércio
CNPJ: 12.345.678/0001-90
Funcionário: Maria Silva
Cargo: Analista de Sistemas
Competência: 05/2025
Salário Bruto: R$ 3.000,00
INSS 9,00% 253,41
IRRF 7,50% 36,55
FGTS do Mês: 240,00
Total de Vencimentos: 3.000,00
Total de Descontos: 289,96
Salário Líquido: R$ 2.710,04`

type fakePDF struct {
	text      string
	textErr   error
	images    []image.Image
	imagesErr error
}

func (f *fakePDF) ExtractText(_ []byte, _ string) (string, error) {
	return f.text, f.textErr
}

func (f *fakePDF) ExtractImages(_ []byte, _ string) ([]image.Image, error) {
	return f.images, f.imagesErr
}

type fakeOCR struct {
	text string
	conf float64
	err  error
}

func (f *fakeOCR) ExtractFromImage(_ image.Image) (string, float64, error) {
	return f.text, f.conf, f.err
}

type fakeDetector struct {
	entities []extract.Entity
	err      error
}

func (f *fakeDetector) Enabled() bool { return true }

func (f *fakeDetector) DetectEntities(_ context.Context, _ []byte, _, _ string) ([]extract.Entity, error) {
	return f.entities, f.err
}

type fakeStore struct {
	saved   []*payslip.Extracted
	saveErr error
	records []storage.PayslipRecord
	listErr error
}

func (f *fakeStore) Save(_ context.Context, e *payslip.Extracted) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, e)
	return "stored-id", nil
}

func (f *fakeStore) List(_ context.Context, _ string, _ int) ([]storage.PayslipRecord, error) {
	return f.records, f.listErr
}

func testPage(t *testing.T) image.Image {
	t.Helper()
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testPage(t)))
	return buf.Bytes()
}

func TestScanDigitalPDFUsesTextLayer(t *testing.T) {
	store := &fakeStore{}
	svc := NewScanService(&fakeOCR{}, &fakePDF{text: brPayslipText, imagesErr: errors.New("no images")}, nil, store, zap.NewNop(), 0)

	resp, err := svc.ScanPayslip(context.Background(), []byte("%PDF"), "holerite.pdf", payslip.CountryBR, "")
	require.NoError(t, err)

	assert.Equal(t, "pdf_text", resp.Quality.Source)
	assert.Zero(t, resp.Quality.OCRConfidence)
	assert.False(t, resp.Quality.QRFound)

	rec := resp.Payslip
	require.NotNil(t, rec.GrossSalary)
	assert.Equal(t, 3000.0, *rec.GrossSalary)
	require.NotNil(t, rec.NetSalary)
	assert.Equal(t, 2710.04, *rec.NetSalary)
	require.NotNil(t, rec.SocialSecurity)
	assert.Equal(t, 253.41, *rec.SocialSecurity)
	// The employer line carries no label; the tax-id heuristic fills it.
	require.NotNil(t, rec.EmployerName)
	assert.Equal(t, "Acme Indústria e Comércio", *rec.EmployerName)
	assert.Equal(t, payslip.MethodRegex, rec.Method)
	assert.Greater(t, rec.Confidence, 50.0)

	assert.Equal(t, 3000.0, resp.Legacy.GrossSalary)
	assert.Contains(t, resp.Report.Summary, "Maria Silva")
	assert.Contains(t, resp.Report.Summary, "3.000,00")
	assert.Contains(t, resp.Report.Summary, "2.710,04")

	assert.Equal(t, "stored-id", resp.ID)
	require.Len(t, store.saved, 1)
}

func TestScanThinTextLayerFallsBackToOCR(t *testing.T) {
	pdf := &fakePDF{text: "p. 1", images: []image.Image{testPage(t)}}
	ocr := &fakeOCR{text: brPayslipText, conf: 91.5}
	svc := NewScanService(ocr, pdf, nil, nil, zap.NewNop(), 40)

	resp, err := svc.ScanPayslip(context.Background(), []byte("%PDF"), "scan.pdf", payslip.CountryBR, "")
	require.NoError(t, err)

	assert.Equal(t, "ocr", resp.Quality.Source)
	assert.InDelta(t, 91.5, resp.Quality.OCRConfidence, 0.001)
	assert.Equal(t, 1, resp.Quality.Pages)
	assert.Contains(t, resp.Quality.Issues, "pdf_text_layer_thin")

	require.NotNil(t, resp.Payslip.GrossSalary)
	assert.Equal(t, 3000.0, *resp.Payslip.GrossSalary)
}

func TestScanImageUpload(t *testing.T) {
	ocr := &fakeOCR{text: brPayslipText, conf: 88}
	svc := NewScanService(ocr, &fakePDF{}, nil, nil, zap.NewNop(), 0)

	resp, err := svc.ScanPayslip(context.Background(), pngBytes(t), "payslip.png", payslip.CountryBR, "")
	require.NoError(t, err)

	assert.Equal(t, "ocr", resp.Quality.Source)
	assert.Equal(t, 1, resp.Quality.Pages)
	require.NotNil(t, resp.Payslip.NetSalary)
	assert.Equal(t, 2710.04, *resp.Payslip.NetSalary)
	assert.NotEmpty(t, resp.ID)
}

func TestScanEntityFallbackYieldsHybrid(t *testing.T) {
	// No labeled employee line, so the name can only come from the entity
	// service while the amounts come from the patterns.
	text := `Salário Bruto: R$ 3.000,00
Salário Líquido: R$ 2.710,04
Total de Descontos: 289,96`
	detector := &fakeDetector{entities: []extract.Entity{
		{Type: "person", Text: "Maria Silva", Confidence: 0.93},
	}}
	svc := NewScanService(&fakeOCR{}, &fakePDF{text: text + "\npadding to clear the text threshold"}, detector, nil, zap.NewNop(), 40)

	resp, err := svc.ScanPayslip(context.Background(), []byte("%PDF"), "holerite.pdf", payslip.CountryBR, "")
	require.NoError(t, err)

	require.NotNil(t, resp.Payslip.EmployeeName)
	assert.Equal(t, "Maria Silva", *resp.Payslip.EmployeeName)
	require.NotNil(t, resp.Payslip.GrossSalary)
	assert.Equal(t, payslip.MethodHybrid, resp.Payslip.Method)
}

func TestScanUnreadableDocumentFails(t *testing.T) {
	pdf := &fakePDF{textErr: errors.New("broken xref"), imagesErr: errors.New("no pages")}
	svc := NewScanService(&fakeOCR{}, pdf, nil, nil, zap.NewNop(), 0)

	_, err := svc.ScanPayslip(context.Background(), []byte("%PDF"), "broken.pdf", payslip.CountryBR, "")
	assert.Error(t, err)
}

func TestScanStorageFailureDoesNotFailScan(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("connection refused")}
	svc := NewScanService(&fakeOCR{}, &fakePDF{text: brPayslipText, imagesErr: errors.New("no images")}, nil, store, zap.NewNop(), 0)

	resp, err := svc.ScanPayslip(context.Background(), []byte("%PDF"), "holerite.pdf", payslip.CountryBR, "")
	require.NoError(t, err)
	assert.Contains(t, resp.Quality.Issues, "persistence_failed")
	assert.NotEmpty(t, resp.ID)
}

func TestListPayslipsWithoutStorage(t *testing.T) {
	svc := NewScanService(&fakeOCR{}, &fakePDF{}, nil, nil, zap.NewNop(), 0)

	_, err := svc.ListPayslips(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestListPayslips(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{records: []storage.PayslipRecord{
		{ID: "a", Country: "BR", EmployeeName: "Maria Silva", Period: "05/2025", NetSalary: 2710.04, Confidence: 87.5, Method: "regex", CreatedAt: created},
	}}
	svc := NewScanService(&fakeOCR{}, &fakePDF{}, nil, store, zap.NewNop(), 0)

	resp, err := svc.ListPayslips(context.Background(), "BR", 10)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Maria Silva", resp.Payslips[0].EmployeeName)
	assert.Equal(t, "2025-06-01T12:00:00Z", resp.Payslips[0].CreatedAt)
}
