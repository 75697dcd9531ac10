package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ITGlobers/return-app-pmi-poc/internal/config"
)

// MailClient is the message-center boundary used for return request emails.
// All of it is best effort: callers log failures and move on, the return
// request is already durably persisted by the time mail is attempted.
type MailClient interface {
	TemplateExists(ctx context.Context, name string) (bool, error)
	PublishTemplate(ctx context.Context, template Template) error
	Send(ctx context.Context, message Message) error
}

type Template struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendlyName"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	IsDefault    bool   `json:"isDefaultTemplate"`
}

type Message struct {
	TemplateName string                 `json:"templateName"`
	To           string                 `json:"to"`
	JSONData     map[string]interface{} `json:"jsonData"`
}

// =====================================================
// HTTP CLIENT IMPLEMENTATION
// =====================================================

type Client struct {
	config     *config.MailConfig
	httpClient *http.Client
}

func NewClient(cfg *config.MailConfig) MailClient {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) TemplateExists(ctx context.Context, name string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/mail/templates/%s", c.config.BaseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("template lookup returned %d", resp.StatusCode)
	}
	return true, nil
}

func (c *Client) PublishTemplate(ctx context.Context, template Template) error {
	return c.postJSON(ctx, fmt.Sprintf("%s/api/mail/templates", c.config.BaseURL), template)
}

func (c *Client) Send(ctx context.Context, message Message) error {
	return c.postJSON(ctx, fmt.Sprintf("%s/api/mail/send", c.config.BaseURL), message)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}
}
