package mcp

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

// Client is the HTTP client for the responder admin API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new admin API client authenticated with a bearer token
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ChatEntry is one message of a sender's conversation log
type ChatEntry struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	IsUser    bool   `json:"isUser"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	ButtonID  string `json:"buttonId,omitempty"`
}

// BotStatus is the automation state of a sender
type BotStatus struct {
	Enabled   bool   `json:"enabled"`
	ExpiresIn *int64 `json:"expiresIn"`
}

// ============ Condition Operations ============

// ListConditions gets the rule table in table order
func (c *Client) ListConditions(ctx context.Context) ([]domain.Condition, error) {
	var result struct {
		Conditions []domain.Condition `json:"conditions"`
	}
	if err := c.get(ctx, "/api/conditions", &result); err != nil {
		return nil, err
	}
	return result.Conditions, nil
}

// GetCondition gets a single condition
func (c *Client) GetCondition(ctx context.Context, id string) (*domain.Condition, error) {
	var cond domain.Condition
	if err := c.get(ctx, "/api/conditions/"+url.PathEscape(id), &cond); err != nil {
		return nil, err
	}
	return &cond, nil
}

// PutCondition creates or replaces a condition
func (c *Client) PutCondition(ctx context.Context, cond *domain.Condition) error {
	return c.send(ctx, http.MethodPut, "/api/conditions/"+url.PathEscape(cond.ID), cond, nil)
}

// DeleteCondition removes a condition
func (c *Client) DeleteCondition(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/conditions/"+url.PathEscape(id))
}

// ============ Chat Operations ============

// GetChatHistory gets the full conversation log of a sender
func (c *Client) GetChatHistory(ctx context.Context, phone string) ([]ChatEntry, error) {
	var result struct {
		Messages []ChatEntry `json:"messages"`
	}
	path := "/api/chats?phoneNumber=" + url.QueryEscape(phone)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// SendMessage sends an operator message to a sender
func (c *Client) SendMessage(ctx context.Context, phone, text string) error {
	body := map[string]string{"phoneNumber": phone, "message": text}
	return c.send(ctx, http.MethodPost, "/api/send-message", body, nil)
}

// ============ Bot Status Operations ============

// GetBotStatus gets whether automated replies are enabled for a sender
func (c *Client) GetBotStatus(ctx context.Context, phone string) (*BotStatus, error) {
	var status BotStatus
	if err := c.get(ctx, "/api/bot-status?phoneNumber="+url.QueryEscape(phone), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetBotStatus enables or disables automated replies for a sender.
// expiration is epoch milliseconds, zero for no expiration.
func (c *Client) SetBotStatus(ctx context.Context, phone string, enabled bool, expiration int64) error {
	body := map[string]any{"phoneNumber": phone, "enabled": enabled}
	if expiration > 0 {
		body["expiration"] = expiration
	}
	return c.send(ctx, http.MethodPost, "/api/bot-status", body, nil)
}

// ============ HTTP Helpers ============

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(jsonBody), result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
