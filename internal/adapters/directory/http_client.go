// Package directory provides ContactDirectory implementations over the
// external services that own contact identities.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payermatch/internal/core"
)

const maxResponseBytes = 1 << 20

// HTTPDirectory implements the ContactDirectory interface against a JSON
// get-or-create endpoint. The endpoint receives the resolved fields as a
// flat JSON object and answers {"id": "<contact id>"} on success or a
// non-2xx status with {"error": "<message>"} on failure.
type HTTPDirectory struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

type getOrCreateResponse struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// NewHTTPDirectory creates a new HTTP contact directory client
func NewHTTPDirectory(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPDirectory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDirectory{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// GetOrCreate posts the resolved fields to the directory endpoint and
// returns the contact identifier it answers with.
func (d *HTTPDirectory) GetOrCreate(ctx context.Context, fields core.ResolvedFields) (string, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode directory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create directory request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if d.apiKey != "" {
		req.Header.Set("X-Api-Key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call contact directory: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read directory response: %w", err)
	}

	var out getOrCreateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("contact directory returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("failed to decode directory response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || out.Error != "" {
		return "", fmt.Errorf("contact directory returned status %d: %s", resp.StatusCode, out.Error)
	}
	if out.ID == "" {
		return "", fmt.Errorf("contact directory response missing contact id")
	}

	d.logger.Debug("Contact directory answered",
		zap.String("contact_id", out.ID),
		zap.String("request_id", requestID))

	return out.ID, nil
}
