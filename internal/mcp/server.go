package mcp

import (
	"context"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server exposing the admin tools
func NewServer(handler *Handler, version string) *gomcp.Server {
	server := gomcp.NewServer(&gomcp.Implementation{
		Name:    "wa-responder-admin",
		Version: version,
	}, nil)

	defs := make(map[string]string)
	for _, def := range GetToolDefinitions() {
		defs[def.Name] = def.Description
	}
	tool := func(name string) *gomcp.Tool {
		return &gomcp.Tool{Name: name, Description: defs[name]}
	}

	gomcp.AddTool(server, tool(ToolListConditions), handler.ListConditions)
	gomcp.AddTool(server, tool(ToolGetCondition), handler.GetCondition)
	gomcp.AddTool(server, tool(ToolPutCondition), handler.PutCondition)
	gomcp.AddTool(server, tool(ToolDeleteCondition), handler.DeleteCondition)
	gomcp.AddTool(server, tool(ToolGetChatHistory), handler.GetChatHistory)
	gomcp.AddTool(server, tool(ToolGetBotStatus), handler.GetBotStatus)
	gomcp.AddTool(server, tool(ToolSetBotStatus), handler.SetBotStatus)
	gomcp.AddTool(server, tool(ToolSendMessage), handler.SendMessage)

	return server
}

// ServeStdio runs the server over stdin/stdout until ctx is done
func ServeStdio(ctx context.Context, server *gomcp.Server) error {
	return server.Run(ctx, &gomcp.StdioTransport{})
}
