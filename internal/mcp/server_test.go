package mcp

import (
	"context"
	"encoding/json"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func connect(t *testing.T, handler *Handler) *gomcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := gomcp.NewInMemoryTransports()
	server := NewServer(handler, "test")
	if _, err := server.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("Server connect failed: %v", err)
	}

	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Client connect failed: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestServer_ListTools(t *testing.T) {
	_, api := newAdminStub(t, nil)
	session := connect(t, NewHandler(NewClient(api.URL, "secret")))

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, def := range GetToolDefinitions() {
		if !names[def.Name] {
			t.Errorf("Tool %s not registered", def.Name)
		}
	}
}

func TestServer_CallTool(t *testing.T) {
	_, api := newAdminStub(t, map[string]any{
		"GET /api/bot-status": map[string]any{"enabled": true, "expiresIn": nil},
	})
	session := connect(t, NewHandler(NewClient(api.URL, "secret")))

	result, err := session.CallTool(context.Background(), &gomcp.CallToolParams{
		Name:      ToolGetBotStatus,
		Arguments: map[string]any{"phone_number": "34600"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Tool returned error: %+v", result.Content)
	}

	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("Marshal structured content: %v", err)
	}
	var out BotStatusOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal structured content: %v", err)
	}
	if !out.Enabled {
		t.Errorf("Expected enabled, got %s", raw)
	}
}

func TestServer_CallToolError(t *testing.T) {
	_, api := newAdminStub(t, nil)
	session := connect(t, NewHandler(NewClient(api.URL, "secret")))

	result, err := session.CallTool(context.Background(), &gomcp.CallToolParams{
		Name:      ToolGetCondition,
		Arguments: map[string]any{"id": "missing"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for missing condition")
	}
}
