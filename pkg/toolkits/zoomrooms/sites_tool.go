package zoomrooms

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

// siteEntry is one location in the sites listing.
type siteEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Address       string   `json:"address,omitempty"`
	Timezone      string   `json:"timezone,omitempty"`
	Aliases       []string `json:"aliases"`
	ChildrenCount int      `json:"children_count"`
	ParentID      string   `json:"parent_id,omitempty"`
}

// listSitesOutput is the JSON response for the zoom_list_sites tool.
type listSitesOutput struct {
	Sites            []siteEntry       `json:"sites"`
	TotalCount       int               `json:"total_count"`
	HierarchySummary hierarchy.Summary `json:"hierarchy_summary"`
	CommonAliases    map[string]string `json:"common_aliases"`
}

// listSitesInput is empty since this tool has no parameters.
type listSitesInput struct{}

// registerSitesTool registers the zoom_list_sites tool with the MCP server.
func (t *Toolkit) registerSitesTool(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name: "zoom_list_sites",
		Description: "List all Zoom sites/locations with their campus → building → floor " +
			"hierarchy and aliases. Call this first to understand available locations " +
			"before using location-specific queries.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ listSitesInput) (*mcp.CallToolResult, any, error) {
		return t.handleListSites(ctx, req)
	})
}

// handleListSites handles the zoom_list_sites tool call.
func (t *Toolkit) handleListSites(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, any, error) {
	snap, err := t.hierarchy.Snapshot(ctx)
	if err != nil {
		return errorResult("fetching site hierarchy: " + err.Error())
	}

	out := listSitesOutput{
		HierarchySummary: snap.Summarize(),
		CommonAliases:    t.commonAliases(snap),
	}

	for _, kind := range []hierarchy.Kind{hierarchy.KindCampus, hierarchy.KindBuilding, hierarchy.KindFloor, hierarchy.KindUnknown} {
		for _, n := range snap.ByKind(kind) {
			out.Sites = append(out.Sites, siteEntry{
				ID:            n.ID,
				Name:          n.Name,
				Kind:          string(n.Kind),
				Address:       n.Address,
				Timezone:      n.Timezone,
				Aliases:       snap.AliasesOf(n.ID),
				ChildrenCount: len(n.ChildrenIDs),
				ParentID:      n.ParentID,
			})
		}
	}
	out.TotalCount = len(out.Sites)

	return jsonResult(out)
}

// commonAliases builds the quick-reference alias hints: the configured
// Denver overrides plus the campus code shortcuts.
func (t *Toolkit) commonAliases(snap *hierarchy.Snapshot) map[string]string {
	hints := map[string]string{}
	for _, alias := range t.resolver.DenverAliases() {
		hints[alias.Key] = alias.Description
	}
	for _, campus := range snap.ByKind(hierarchy.KindCampus) {
		for _, alias := range snap.AliasesOf(campus.ID) {
			if len(alias) <= 4 {
				if _, taken := hints[alias]; !taken {
					hints[alias] = campus.Name
				}
			}
		}
	}
	return hints
}
