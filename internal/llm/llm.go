// Package llm provides thin HTTP clients for external text-generation APIs.
// Clients return raw completion text; interpreting that text is the caller's
// concern. Every call is bounded by the client's HTTP timeout.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 60 * time.Second

// Client is the completion interface consumed by the planner and editor.
type Client interface {
	// Complete sends a prompt (with an optional system instruction) and
	// returns the raw completion text.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// newHTTPClient returns an http.Client with the shared completion timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// doPost sends body as JSON to rawURL and decodes the JSON response into dst.
func doPost(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, body, dst any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request for %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s returned status %d: %s", rawURL, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}
