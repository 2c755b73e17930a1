package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ConversionClient talks to a Tika-compatible document conversion service
// over HTTP. The service accepts arbitrary document bytes and returns an
// XHTML rendition.
type ConversionClient struct {
	baseURL string
	client  *http.Client
}

// NewConversionClient creates a client for the service at baseURL.
func NewConversionClient(baseURL string, timeout time.Duration) *ConversionClient {
	return &ConversionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping probes the service's version endpoint. A non-2xx answer or
// transport failure reports the service as unavailable.
func (c *ConversionClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probing %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.baseURL)
	}
	return nil
}

// Convert submits document bytes and returns the XHTML rendition.
func (c *ConversionClient) Convert(ctx context.Context, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("converting document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d from conversion service", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading conversion response: %w", err)
	}
	return string(body), nil
}
