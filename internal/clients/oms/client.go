package oms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/internal/config"
)

// OrderClient is the order management system boundary: paginated order
// search plus full order detail. Both operations are idempotent reads.
type OrderClient interface {
	SearchOrders(ctx context.Context, params SearchParams) (*SearchResponse, error)
	GetOrder(ctx context.Context, orderID string) (*OrderDetail, error)
}

// =====================================================
// HTTP CLIENT IMPLEMENTATION
// =====================================================

type Client struct {
	config     *config.OMSConfig
	httpClient *http.Client
}

func NewClient(cfg *config.OMSConfig) OrderClient {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SearchOrders runs one page of the order search.
func (c *Client) SearchOrders(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("clientEmail", params.ClientEmail)
	query.Set("orderBy", params.OrderBy)
	query.Set("f_status", params.Status)
	query.Set("f_creationDate", fmt.Sprintf(
		"creationDate:[%s TO %s]",
		params.CreationFrom.UTC().Format("2006-01-02T15:04:05.000Z"),
		params.CreationTo.UTC().Format("2006-01-02T15:04:05.000Z"),
	))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))

	endpoint := fmt.Sprintf("%s/api/oms/pvt/orders?%s", c.config.BaseURL, query.Encode())

	var result SearchResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("order search failed: %w", err)
	}

	return &result, nil
}

// GetOrder resolves the full order detail.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderDetail, error) {
	endpoint := fmt.Sprintf("%s/api/oms/pvt/orders/%s", c.config.BaseURL, url.PathEscape(orderID))

	var result OrderDetail
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("order detail %s failed: %w", orderID, err)
	}

	return &result, nil
}

// getJSON issues a GET with one bounded retry. Reads are idempotent, so a
// single retry on transport failure is safe; writes never go through here.
func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(200 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.config.AuthToken != "" {
			req.Header.Set("VtexIdClientAutCookie", c.config.AuthToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("resource not found (404)")
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("upstream returned %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
		}

		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	}

	return lastErr
}
