package client

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// TesseractClient runs local OCR over payslip images. Payslips arrive in
// Portuguese and French, so the language pack is configurable and defaults
// to por+fra+eng.
type TesseractClient struct {
	dataPath  string
	languages string
	logger    *zap.Logger
}

func NewTesseractClient(dataPath, languages string, logger *zap.Logger) *TesseractClient {
	if languages == "" {
		languages = "por+fra+eng"
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: languages,
		logger:    logger,
	}
}

// ExtractTextFromFile runs OCR on an uploaded file.
func (tc *TesseractClient) ExtractTextFromFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.CreateTempFile(file, fileHeader.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	text, _, err := tc.ExtractTextAndQuality(tempFile)
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}
	return text, nil
}

// CreateTempFile spills uploaded content to disk so Tesseract can read it.
func (tc *TesseractClient) CreateTempFile(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "payslip-ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

// ExtractFromImage runs OCR on a decoded image, typically a page pulled out
// of a scanned PDF.
func (tc *TesseractClient) ExtractFromImage(img image.Image) (string, float64, error) {
	tempFile, err := os.CreateTemp("", "payslip-page-*.png")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := png.Encode(tempFile, img); err != nil {
		tempFile.Close()
		return "", 0, fmt.Errorf("failed to encode page: %w", err)
	}
	tempFile.Close()

	return tc.ExtractTextAndQuality(tempFile.Name())
}

// ExtractTextAndQuality returns the recognized text plus the mean word-level
// confidence (0-100). The score feeds the document quality block of the
// scan response.
func (tc *TesseractClient) ExtractTextAndQuality(filePath string) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.languages); err != nil {
		return "", 0, fmt.Errorf("failed to set language %q: %w", tc.languages, err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Text without per-word scores still beats a hard failure.
		tc.logger.Warn("word confidence unavailable", zap.Error(err))
		return text, 0, nil
	}

	var totalConf float64
	var count int
	for _, box := range boxes {
		totalConf += box.Confidence
		count++
	}

	avgConf := 0.0
	if count > 0 {
		avgConf = totalConf / float64(count)
	}

	return text, avgConf, nil
}

func (tc *TesseractClient) Close() {
	tc.logger.Info("tesseract client closed")
}
