// Package api implements the REST collaborator the stores mutate through.
// The stores themselves never see HTTP; they depend on a promise-shaped
// interface and this package supplies the transport.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/util"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the backend reports a missing entity
var ErrNotFound = errors.New("entity not found")

// Client talks to the ledgerpen backend over HTTP. Calls are rate-limited
// so a burst of optimistic mutations cannot flood the backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
}

// NewClient creates a backend client from HTTP configuration
func NewClient(cfg model.HTTPConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// List fetches all bills
func (c *Client) List(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	if err := c.do(ctx, http.MethodGet, "/api/bills", nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Get fetches one bill by id
func (c *Client) Get(ctx context.Context, id string) (model.Bill, error) {
	var bill model.Bill
	err := c.do(ctx, http.MethodGet, "/api/bills/"+id, nil, &bill)
	return bill, err
}

// Create persists a new bill and returns the server's authoritative record,
// including the server-assigned id.
func (c *Client) Create(ctx context.Context, bill model.Bill) (model.Bill, error) {
	bill.ID = "" // The server assigns ids; synthetic ids never cross the wire
	var created model.Bill
	err := c.do(ctx, http.MethodPost, "/api/bills", bill, &created)
	return created, err
}

// Update replaces a bill and returns the authoritative record
func (c *Client) Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error) {
	var updated model.Bill
	err := c.do(ctx, http.MethodPut, "/api/bills/"+id, bill, &updated)
	return updated, err
}

// Delete removes a bill
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bills/"+id, nil, nil)
}

// MarkAsPaid records a payment against a bill
func (c *Client) MarkAsPaid(ctx context.Context, id string, paidDate time.Time) (model.Bill, error) {
	body := map[string]any{"paid_date": paidDate.UTC().Format(time.RFC3339)}
	var paid model.Bill
	err := c.do(ctx, http.MethodPost, "/api/bills/"+id+"/pay", body, &paid)
	return paid, err
}

// do issues one request and decodes the JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
