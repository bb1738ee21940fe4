package zoomrooms

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/resolve"
)

// resolveLocationInput parameterizes the zoom_resolve_location tool.
type resolveLocationInput struct {
	// LocationQuery is the free-text location to resolve.
	LocationQuery string `json:"location_query"`
}

// resolvedLocation describes one matched node in the debug output.
type resolvedLocation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	ChildrenCount int    `json:"children_count"`
	ParentID      string `json:"parent_id,omitempty"`
}

// resolveLocationOutput is the JSON response for the zoom_resolve_location
// tool.
type resolveLocationOutput struct {
	Confirmation           string             `json:"confirmation"`
	Query                  string             `json:"query"`
	ResolutionType         resolve.Type       `json:"resolution_type"`
	IncludesHierarchy      bool               `json:"includes_hierarchy"`
	AliasesUsed            []string           `json:"aliases_used"`
	Score                  float64            `json:"score,omitempty"`
	ResolvedLocations      []resolvedLocation `json:"resolved_locations"`
	LocationIDsToQuery     []string           `json:"location_ids_to_query"`
	TotalLocationsToSearch int                `json:"total_locations_to_search"`
}

// registerResolveTool registers the zoom_resolve_location tool with the MCP
// server.
func (t *Toolkit) registerResolveTool(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "zoom_resolve_location",
		Description: "Debug tool: show how a location query resolves without fetching " +
			"rooms. Reports matched aliases, resolved locations, and how many API calls " +
			"a room query would make.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in resolveLocationInput) (*mcp.CallToolResult, any, error) {
		return t.handleResolveLocation(ctx, req, in)
	})
}

// handleResolveLocation handles the zoom_resolve_location tool call.
func (t *Toolkit) handleResolveLocation(ctx context.Context, _ *mcp.CallToolRequest, in resolveLocationInput) (*mcp.CallToolResult, any, error) {
	if in.LocationQuery == "" {
		return errorResult("location_query is required")
	}

	res, err := t.resolver.Resolve(ctx, in.LocationQuery)
	if err != nil {
		return errorResult("resolving location: " + err.Error())
	}

	snap, err := t.hierarchy.Snapshot(ctx)
	if err != nil {
		return errorResult("fetching site hierarchy: " + err.Error())
	}

	out := resolveLocationOutput{
		Confirmation:           resolve.Confirmation(res, snap),
		Query:                  in.LocationQuery,
		ResolutionType:         res.Type,
		IncludesHierarchy:      res.IncludesHierarchy,
		AliasesUsed:            res.AliasesUsed,
		Score:                  res.Score,
		ResolvedLocations:      []resolvedLocation{},
		LocationIDsToQuery:     res.FloorIDs,
		TotalLocationsToSearch: len(res.FloorIDs),
	}

	for _, n := range res.Nodes {
		out.ResolvedLocations = append(out.ResolvedLocations, resolvedLocation{
			ID:            n.ID,
			Name:          n.Name,
			Kind:          string(n.Kind),
			ChildrenCount: len(n.ChildrenIDs),
			ParentID:      n.ParentID,
		})
	}

	return jsonResult(out)
}
