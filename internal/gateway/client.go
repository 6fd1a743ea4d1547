// Package gateway implements the unsigned read path against a GalaChain
// gateway: JSON POST per method with a Status/Data/Error response envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/galaport/wallet/internal/chainerr"
)

// StatusSuccess is the envelope Status value signalling success. Any other
// value is an application-level error even on HTTP 200.
const StatusSuccess = 1

// Envelope is the gateway's uniform response wrapper.
type Envelope struct {
	Status    int             `json:"Status"`
	Data      json.RawMessage `json:"Data"`
	Error     string          `json:"Error"`
	Message   string          `json:"Message"`
	ErrorCode string          `json:"ErrorCode"`
}

// Client is an HTTP client for a GalaChain gateway with retry on 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new gateway client.
func NewClient(baseURL string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// post performs a POST <baseURL>/<method> with the given JSON body, retrying
// on 429 with exponential backoff.
func (c *Client) post(ctx context.Context, method string, body any) ([]byte, error) {
	url := c.baseURL + "/" + method

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", method, err)
	}

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", url, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, chainerr.New(chainerr.CodeServerError,
			fmt.Sprintf("gateway HTTP %d from %s", resp.StatusCode, url))
	}

	return nil, lastErr
}

// call performs a gateway method call, unwraps the envelope, and decodes Data
// into dest. Non-success envelopes become typed chain errors.
func (c *Client) call(ctx context.Context, method string, body, dest any) error {
	respBody, err := c.post(ctx, method, body)
	if err != nil {
		return err
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("parsing %s envelope: %w", method, err)
	}

	if env.Status != StatusSuccess {
		return chainerr.FromEnvelope(env.ErrorCode, env.Error, env.Message)
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("parsing %s data: %w", method, err)
	}
	return nil
}
