package zoomrooms

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// testConnectionInput is empty since this tool has no parameters.
type testConnectionInput struct{}

// testConnectionOutput is the JSON response for the zoom_test_connection
// tool. It never carries token material.
type testConnectionOutput struct {
	Status      string `json:"status"`
	AccountID   string `json:"account_id"`
	ClientID    string `json:"client_id"`
	TokenCached bool   `json:"token_cached"`
	Message     string `json:"message"`
}

// registerConnectionTool registers the zoom_test_connection tool with the
// MCP server.
func (t *Toolkit) registerConnectionTool(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "zoom_test_connection",
		Description: "Test the Zoom API connection and validate credentials. Call this " +
			"first when troubleshooting setup; returns authentication status and token " +
			"cache state.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ testConnectionInput) (*mcp.CallToolResult, any, error) {
		return t.handleTestConnection(ctx, req)
	})
}

// handleTestConnection handles the zoom_test_connection tool call.
func (t *Toolkit) handleTestConnection(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, any, error) {
	tokens := t.client.Tokens()
	if _, err := tokens.Token(ctx); err != nil {
		return errorResult("zoom connection test failed: " + err.Error())
	}

	return jsonResult(testConnectionOutput{
		Status:      "success",
		AccountID:   tokens.AccountID(),
		ClientID:    t.config.ClientID,
		TokenCached: tokens.Cached(),
		Message:     "Successfully authenticated with Zoom API",
	})
}
