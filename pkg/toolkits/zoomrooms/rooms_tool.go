package zoomrooms

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/resolve"
	"github.com/txn2/mcp-zoom-rooms/pkg/rooms"
	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

// listRoomsInput parameterizes the zoom_list_rooms tool.
type listRoomsInput struct {
	// LocationQuery narrows the listing to a resolved location, e.g. "SF1",
	// "DEN1", "Floor 1", "Denver Building 2". Omit it for a single
	// company-wide call.
	LocationQuery string `json:"location_query,omitempty"`
}

// resolutionInfo is the resolution metadata echoed with filtered results.
type resolutionInfo struct {
	Type              resolve.Type `json:"type"`
	LocationsFound    int          `json:"locations_found"`
	AliasesUsed       []string     `json:"aliases_used"`
	IncludesHierarchy bool         `json:"includes_hierarchy"`
}

// listRoomsOutput is the JSON response for the zoom_list_rooms tool.
type listRoomsOutput struct {
	Confirmation    string                         `json:"confirmation,omitempty"`
	Rooms           any                            `json:"rooms"`
	TotalCount      int                            `json:"total_count"`
	Query           string                         `json:"query,omitempty"`
	Resolution      *resolutionInfo                `json:"resolution,omitempty"`
	LocationSummary map[string]rooms.LocationRooms `json:"location_summary,omitempty"`
	StatusSummary   map[string]int                 `json:"status_summary,omitempty"`
	FailedLocations []string                       `json:"failed_locations,omitempty"`
	RequestID       string                         `json:"request_id,omitempty"`
}

// registerRoomsTool registers the zoom_list_rooms tool with the MCP server.
func (t *Toolkit) registerRoomsTool(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "zoom_list_rooms",
		Description: "List Zoom rooms with optional location filtering. For company-wide " +
			"queries omit location_query (a single efficient API call). Provide " +
			"location_query only for specific locations (e.g. 'SF1', 'DEN1', 'Floor 1'); " +
			"this resolves the query and makes one API call per matched floor.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in listRoomsInput) (*mcp.CallToolResult, any, error) {
		return t.handleListRooms(ctx, req, in)
	})
}

// handleListRooms handles the zoom_list_rooms tool call.
func (t *Toolkit) handleListRooms(ctx context.Context, _ *mcp.CallToolRequest, in listRoomsInput) (*mcp.CallToolResult, any, error) {
	if in.LocationQuery == "" {
		return t.listAllRooms(ctx)
	}
	return t.listRoomsByLocation(ctx, in.LocationQuery)
}

// listAllRooms fetches every room in one call, with no resolution pass.
func (t *Toolkit) listAllRooms(ctx context.Context) (*mcp.CallToolResult, any, error) {
	list, err := t.client.ListRooms(ctx, zoomapi.RoomListOptions{PageSize: t.aggregatorPageSize()})
	if err != nil {
		return errorResult("fetching rooms: " + err.Error())
	}

	total := list.TotalRecords
	if total == 0 {
		total = len(list.Rooms)
	}
	return jsonResult(listRoomsOutput{
		Rooms:      list.Rooms,
		TotalCount: total,
	})
}

// listRoomsByLocation resolves the query and fans out per matched floor.
func (t *Toolkit) listRoomsByLocation(ctx context.Context, query string) (*mcp.CallToolResult, any, error) {
	res, err := t.resolver.Resolve(ctx, query)
	if err != nil {
		return errorResult("resolving location: " + err.Error())
	}

	snap, err := t.hierarchy.Snapshot(ctx)
	if err != nil {
		return errorResult("fetching site hierarchy: " + err.Error())
	}

	info := &resolutionInfo{
		Type:              res.Type,
		LocationsFound:    len(res.Nodes),
		AliasesUsed:       res.AliasesUsed,
		IncludesHierarchy: res.IncludesHierarchy,
	}

	// An unmatched query is a normal empty result, not a tool error.
	if res.Type == resolve.TypeNone {
		return jsonResult(listRoomsOutput{
			Confirmation: resolve.Confirmation(res, snap),
			Rooms:        []rooms.RoomInfo{},
			Query:        query,
			Resolution:   info,
		})
	}

	result := t.aggregator.FetchByResolution(ctx, snap, res)

	return jsonResult(listRoomsOutput{
		Confirmation:    resolve.Confirmation(res, snap),
		Rooms:           result.Rooms,
		TotalCount:      result.TotalCount,
		Query:           query,
		Resolution:      info,
		LocationSummary: result.LocationSummary,
		StatusSummary:   result.StatusSummary,
		FailedLocations: result.FailedLocations,
		RequestID:       result.RequestID,
	})
}

// aggregatorPageSize returns the configured room page size with the
// aggregator default applied.
func (t *Toolkit) aggregatorPageSize() int {
	if t.config.RoomPageSize > 0 {
		return t.config.RoomPageSize
	}
	return rooms.DefaultPageSize
}
