package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool calls using the HTTP client
type Handler struct {
	client *Client
	now    func() time.Time
}

// NewHandler creates a new MCP handler
func NewHandler(client *Client) *Handler {
	return &Handler{client: client, now: time.Now}
}

// ============ Condition Handlers ============

func (h *Handler) ListConditions(ctx context.Context, _ *gomcp.CallToolRequest, _ ListConditionsInput) (*gomcp.CallToolResult, ConditionListOutput, error) {
	conditions, err := h.client.ListConditions(ctx)
	if err != nil {
		return nil, ConditionListOutput{}, err
	}

	out := ConditionListOutput{Conditions: make([]ConditionView, 0, len(conditions))}
	for i := range conditions {
		out.Conditions = append(out.Conditions, toConditionView(&conditions[i]))
	}
	return nil, out, nil
}

func (h *Handler) GetCondition(ctx context.Context, _ *gomcp.CallToolRequest, in ConditionIDInput) (*gomcp.CallToolResult, ConditionView, error) {
	if in.ID == "" {
		return nil, ConditionView{}, fmt.Errorf("id is required")
	}

	cond, err := h.client.GetCondition(ctx, in.ID)
	if err != nil {
		return nil, ConditionView{}, err
	}
	view := toConditionView(cond)
	if view.ID == "" {
		view.ID = in.ID
	}
	return nil, view, nil
}

func (h *Handler) PutCondition(ctx context.Context, _ *gomcp.CallToolRequest, in PutConditionInput) (*gomcp.CallToolResult, ResultOutput, error) {
	cond := in.Condition.toDomain()
	if err := cond.Validate(); err != nil {
		return nil, ResultOutput{}, err
	}

	if err := h.client.PutCondition(ctx, cond); err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, ResultOutput{Success: true, Message: fmt.Sprintf("Condition %s saved", cond.ID)}, nil
}

func (h *Handler) DeleteCondition(ctx context.Context, _ *gomcp.CallToolRequest, in ConditionIDInput) (*gomcp.CallToolResult, ResultOutput, error) {
	if in.ID == "" {
		return nil, ResultOutput{}, fmt.Errorf("id is required")
	}

	if err := h.client.DeleteCondition(ctx, in.ID); err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, ResultOutput{Success: true, Message: fmt.Sprintf("Condition %s deleted", in.ID)}, nil
}

// ============ Chat Handlers ============

func (h *Handler) GetChatHistory(ctx context.Context, _ *gomcp.CallToolRequest, in PhoneInput) (*gomcp.CallToolResult, ChatHistoryOutput, error) {
	if in.PhoneNumber == "" {
		return nil, ChatHistoryOutput{}, fmt.Errorf("phone_number is required")
	}

	messages, err := h.client.GetChatHistory(ctx, in.PhoneNumber)
	if err != nil {
		return nil, ChatHistoryOutput{}, err
	}
	return nil, ChatHistoryOutput{PhoneNumber: in.PhoneNumber, Messages: messages}, nil
}

func (h *Handler) SendMessage(ctx context.Context, _ *gomcp.CallToolRequest, in SendMessageInput) (*gomcp.CallToolResult, ResultOutput, error) {
	if in.PhoneNumber == "" || in.Message == "" {
		return nil, ResultOutput{}, fmt.Errorf("phone_number and message are required")
	}

	if err := h.client.SendMessage(ctx, in.PhoneNumber, in.Message); err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, ResultOutput{Success: true, Message: fmt.Sprintf("Message sent to %s", in.PhoneNumber)}, nil
}

// ============ Bot Status Handlers ============

func (h *Handler) GetBotStatus(ctx context.Context, _ *gomcp.CallToolRequest, in PhoneInput) (*gomcp.CallToolResult, BotStatusOutput, error) {
	if in.PhoneNumber == "" {
		return nil, BotStatusOutput{}, fmt.Errorf("phone_number is required")
	}

	status, err := h.client.GetBotStatus(ctx, in.PhoneNumber)
	if err != nil {
		return nil, BotStatusOutput{}, err
	}

	out := BotStatusOutput{Enabled: status.Enabled}
	if status.ExpiresIn != nil {
		minutes := (time.Duration(*status.ExpiresIn) * time.Millisecond).Round(time.Minute) / time.Minute
		m := int64(minutes)
		out.ExpiresInMinutes = &m
	}
	return nil, out, nil
}

func (h *Handler) SetBotStatus(ctx context.Context, _ *gomcp.CallToolRequest, in SetBotStatusInput) (*gomcp.CallToolResult, ResultOutput, error) {
	if in.PhoneNumber == "" {
		return nil, ResultOutput{}, fmt.Errorf("phone_number is required")
	}
	if in.ExpiresMinutes < 0 {
		return nil, ResultOutput{}, fmt.Errorf("expires_minutes must not be negative")
	}

	var expiration int64
	if !in.Enabled && in.ExpiresMinutes > 0 {
		expiration = h.now().Add(time.Duration(in.ExpiresMinutes) * time.Minute).UnixMilli()
	}

	if err := h.client.SetBotStatus(ctx, in.PhoneNumber, in.Enabled, expiration); err != nil {
		return nil, ResultOutput{}, err
	}

	state := "enabled"
	if !in.Enabled {
		state = "disabled"
	}
	return nil, ResultOutput{Success: true, Message: fmt.Sprintf("Bot %s for %s", state, in.PhoneNumber)}, nil
}
