package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v22.0"
)

// APIError is a non-2xx Graph API response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api HTTP %d: %s", e.StatusCode, e.Message)
}

// Config configures the Graph API client
type Config struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

// Client calls the WhatsApp Cloud API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Graph API client
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: base + "/" + version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendMessage posts a message payload from the given business number
func (c *Client) SendMessage(ctx context.Context, phoneNumberID, accessToken string, msg *domain.OutboundMessage) error {
	if phoneNumberID == "" || accessToken == "" {
		return fmt.Errorf("phone number id and access token are required")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, url.PathEscape(phoneNumberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(req, nil)
}

// ExchangeToken trades a token for a long-lived one via fb_exchange_token
func (c *Client) ExchangeToken(ctx context.Context, appID, appSecret, token string) (string, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", appID)
	params.Set("client_secret", appSecret)
	params.Set("fb_exchange_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oauth/access_token?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts error.message from a Graph error body
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(body))
}
