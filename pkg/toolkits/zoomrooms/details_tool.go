package zoomrooms

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// roomDetailsInput parameterizes the zoom_room_details tool.
type roomDetailsInput struct {
	// RoomID is the Zoom room identifier.
	RoomID string `json:"room_id"`
}

// roomDetailsOutput is the JSON response for the zoom_room_details tool.
type roomDetailsOutput struct {
	Room         json.RawMessage `json:"room"`
	RecentEvents json.RawMessage `json:"recent_events"`
}

// registerRoomDetailsTool registers the zoom_room_details tool with the MCP
// server.
func (t *Toolkit) registerRoomDetailsTool(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "zoom_room_details",
		Description: "Get full details for one Zoom room by id, including configuration " +
			"and recent past events.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in roomDetailsInput) (*mcp.CallToolResult, any, error) {
		return t.handleRoomDetails(ctx, req, in)
	})
}

// handleRoomDetails handles the zoom_room_details tool call.
func (t *Toolkit) handleRoomDetails(ctx context.Context, _ *mcp.CallToolRequest, in roomDetailsInput) (*mcp.CallToolResult, any, error) {
	if in.RoomID == "" {
		return errorResult("room_id is required")
	}

	room, err := t.client.RoomDetails(ctx, in.RoomID)
	if err != nil {
		return errorResult("fetching room details: " + err.Error())
	}

	// Events are supplementary; a failed fetch degrades to an empty list.
	events, err := t.client.RoomEvents(ctx, in.RoomID, eventsPageSize)
	if err != nil {
		slog.Debug("room events fetch failed", "room_id", in.RoomID, "error", err)
		events = json.RawMessage(`[]`)
	}

	return jsonResult(roomDetailsOutput{
		Room:         room,
		RecentEvents: events,
	})
}
