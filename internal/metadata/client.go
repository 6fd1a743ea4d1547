// Package metadata resolves token-class metadata from the project API.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/galaport/wallet/internal/domain"
)

const cacheTTL = 5 * time.Minute

// Client fetches token metadata with retry on 429 and a small TTL cache.
// Metadata changes rarely; the cache keeps store recomputation cheap.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	meta      domain.TokenMetadata
	expiresAt time.Time
}

// NewClient creates a metadata API client.
func NewClient(baseURL string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		cache:      make(map[string]cacheEntry),
	}
}

type rawMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Decimals    int    `json:"decimals"`
	MaxSupply   string `json:"maxSupply"`
	TotalMinted string `json:"totalMintedQuantity"`
}

// Fetch resolves metadata for one token class. A miss on the API is not an
// error; callers get a zero-value record and display falls back to the key.
func (c *Client) Fetch(ctx context.Context, key domain.TokenKey) (domain.TokenMetadata, error) {
	cacheKey := key.String()

	c.mu.RLock()
	entry, ok := c.cache[cacheKey]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.meta, nil
	}

	path := fmt.Sprintf("/tokens/%s/%s/%s/%s",
		url.PathEscape(key.Collection), url.PathEscape(key.Category),
		url.PathEscape(key.Type), url.PathEscape(key.AdditionalKey))

	body, status, err := c.getWithRetry(ctx, c.baseURL+path)
	if err != nil {
		return domain.TokenMetadata{}, err
	}
	if status == http.StatusNotFound {
		return domain.TokenMetadata{Key: key}, nil
	}

	var raw rawMetadata
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.TokenMetadata{}, fmt.Errorf("parsing metadata for %s: %w", key, err)
	}

	meta := domain.TokenMetadata{
		Key:         key,
		Name:        raw.Name,
		Symbol:      raw.Symbol,
		Description: raw.Description,
		Image:       raw.Image,
		Decimals:    raw.Decimals,
		MaxSupply:   domain.SafeParse(raw.MaxSupply),
		TotalMinted: domain.SafeParse(raw.TotalMinted),
	}

	c.mu.Lock()
	c.cache[cacheKey] = cacheEntry{meta: meta, expiresAt: time.Now().Add(cacheTTL)}
	c.mu.Unlock()

	return meta, nil
}

func (c *Client) getWithRetry(ctx context.Context, url string) ([]byte, int, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("creating metadata request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, 0, fmt.Errorf("metadata request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, 0, fmt.Errorf("reading metadata response: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusNotFound:
			return body, resp.StatusCode, nil
		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("metadata API rate limited (attempt %d/%d)", attempt+1, c.maxRetries+1)
			continue
		default:
			return nil, 0, fmt.Errorf("metadata API HTTP %d: %s", resp.StatusCode, string(body))
		}
	}
	return nil, 0, lastErr
}
