package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pimfinance/payslip-engine/extract"
)

// DocAIClient calls an external document-AI service that returns labeled
// entities (organization, person, money, date) for a scanned document. The
// entities back up the regex pass when a layout defeats the pattern tables.
type DocAIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewDocAIClient(baseURL string, timeout time.Duration, logger *zap.Logger) *DocAIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DocAIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether an endpoint is configured. Without one the scan
// pipeline runs on regex alone.
func (d *DocAIClient) Enabled() bool {
	return d.baseURL != ""
}

type docAIRequest struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
	Language string `json:"language,omitempty"`
}

type docAIResponse struct {
	Entities []struct {
		Type       string  `json:"type"`
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"entities"`
}

// DetectEntities sends the raw document to the entity service and maps the
// response onto the extraction layer's entity shape.
func (d *DocAIClient) DetectEntities(ctx context.Context, content []byte, mimeType, language string) ([]extract.Entity, error) {
	if !d.Enabled() {
		return nil, nil
	}

	payload := docAIRequest{
		Content:  base64.StdEncoding.EncodeToString(content),
		MimeType: mimeType,
		Language: language,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/entities", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build entity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call entity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("entity service returned status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed docAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode entity response: %w", err)
	}

	entities := make([]extract.Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		entities = append(entities, extract.Entity{
			Type:       e.Type,
			Text:       e.Text,
			Confidence: e.Confidence,
		})
	}

	d.logger.Debug("entity service responded", zap.Int("entities", len(entities)))
	return entities, nil
}
