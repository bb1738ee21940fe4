package resolve

import (
	"fmt"
	"strings"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

// Confirmation renders a user-facing sentence describing what a resolution
// will search. Pure presentation: it reads the resolution and snapshot, never
// the network.
func Confirmation(res *Resolution, snap *hierarchy.Snapshot) string {
	switch res.Type {
	case TypeCampus:
		return campusConfirmation(res, snap)
	case TypeFloor, TypeBuilding:
		return leafConfirmation(res, snap)
	case TypeDenverBuilding:
		return denverConfirmation(res)
	case TypeMultiple:
		names := nodeNames(res.Nodes)
		return fmt.Sprintf("🔍 Found multiple matches for '%s': %s in Zoom", res.Query, strings.Join(names, ", "))
	case TypeNone:
		return fmt.Sprintf("No Zoom locations matched '%s'", res.Query)
	default:
		return fmt.Sprintf("✅ Showing '%s' rooms from Zoom", res.Query)
	}
}

// campusConfirmation names the campus and the floors the search covers.
func campusConfirmation(res *Resolution, snap *hierarchy.Snapshot) string {
	if len(res.Nodes) == 0 {
		return fmt.Sprintf("✅ Showing '%s' rooms from Zoom", res.Query)
	}
	campus := res.Nodes[0]

	var floorNames []string
	for _, floorID := range res.FloorIDs {
		if n, ok := snap.Node(floorID); ok && n.ID != campus.ID {
			floorNames = append(floorNames, n.Name)
		}
	}

	if len(floorNames) == 0 {
		return fmt.Sprintf("✅ Showing all '%s' rooms from %s campus in Zoom", res.Query, campus.Name)
	}
	return fmt.Sprintf("✅ Showing all '%s' rooms from %s campus in Zoom across %d floors (%s)",
		res.Query, campus.Name, len(floorNames), strings.Join(floorNames, ", "))
}

// leafConfirmation names a single floor or building and its enclosing campus.
func leafConfirmation(res *Resolution, snap *hierarchy.Snapshot) string {
	if len(res.Nodes) == 0 {
		return fmt.Sprintf("✅ Showing '%s' rooms from Zoom", res.Query)
	}
	n := res.Nodes[0]

	campusName := "Unknown Campus"
	if campus, ok := snap.AncestorCampus(n.ID); ok {
		campusName = campus.Name
	}
	return fmt.Sprintf("✅ Showing '%s' rooms from %s in %s site in Zoom", res.Query, n.Name, campusName)
}

// denverConfirmation describes a hardcoded Denver building resolution.
func denverConfirmation(res *Resolution) string {
	buildingName := "Denver Building 2"
	if len(res.AliasesUsed) > 0 && strings.Contains(res.AliasesUsed[0], "den1") {
		buildingName = "Denver Building 1"
	}

	floorNames := nodeNames(res.Nodes)
	if len(floorNames) == 1 {
		return fmt.Sprintf("✅ Showing '%s' rooms from %s (%s) in USDEN site in Zoom",
			res.Query, buildingName, floorNames[0])
	}
	return fmt.Sprintf("✅ Showing '%s' rooms from %s across %d floors (%s) in USDEN site in Zoom",
		res.Query, buildingName, len(floorNames), strings.Join(floorNames, ", "))
}

func nodeNames(nodes []*hierarchy.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}
