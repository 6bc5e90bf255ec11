package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Handler defines the interface for MCP tool handlers
type Handler interface {
	Tool() mcp.Tool
	Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// RegisterTools registers all handlers with the MCP server
func RegisterTools(s *server.MCPServer, handlers []Handler) {
	for _, h := range handlers {
		s.AddTool(h.Tool(), h.Handle)
	}
}

// parseAccessHash reads an optional access hash passed as a decimal string.
// JSON numbers lose precision above 2^53, so hashes are not accepted as numbers.
func parseAccessHash(request mcp.CallToolRequest) (*int64, error) {
	raw := strings.TrimSpace(mcp.ParseString(request, "access_hash", ""))
	if raw == "" {
		return nil, nil
	}
	hash, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("access_hash must be a decimal integer: %w", err)
	}
	return &hash, nil
}

// progress sends a progress notification when the request came through a server.
func progress(ctx context.Context, current int, message string) {
	if srv := server.ServerFromContext(ctx); srv != nil {
		_ = srv.SendNotificationToClient(ctx, "notifications/progress", map[string]any{
			"progress": current,
			"message":  message,
		})
	}
}
