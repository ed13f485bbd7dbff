package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bulkpay-backend/internal/domain/registry"
)

// Client queries the mobile-network name registry over HTTP.
// GET {base}/subscribers/{msisdn} → 200 {"registered_name": "..."} or
// 404 when the number has no record.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type subscriberResponse struct {
	RegisteredName string `json:"registered_name"`
}

func (c *Client) Lookup(ctx context.Context, phoneNumber string) (registry.LookupResult, error) {
	if c.baseURL == "" {
		return registry.LookupResult{}, fmt.Errorf("registry base url is empty")
	}

	u := fmt.Sprintf("%s/subscribers/%s", c.baseURL, url.PathEscape(phoneNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return registry.LookupResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return registry.LookupResult{}, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// no record for this number: a miss, not an error
		return registry.LookupResult{Found: false}, nil
	case resp.StatusCode >= 400:
		return registry.LookupResult{}, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body subscriberResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return registry.LookupResult{}, fmt.Errorf("failed to decode registry response: %w", err)
	}
	return registry.LookupResult{Found: true, RegisteredName: body.RegisteredName}, nil
}
