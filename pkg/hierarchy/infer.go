package hierarchy

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

var (
	floorNamePattern    = regexp.MustCompile(`(?i)\bfloor\s*\d+|\blevel\s*\d+|^f\d+$|^t\d+f\d+$`)
	buildingNamePattern = regexp.MustCompile(`(?i)\bbuilding\b|\bbldg\b|\btower\b`)
	campusNamePattern   = regexp.MustCompile(`^US[A-Z]{3}$`)

	// roomSampleLimit bounds how many rooms per location are examined when
	// corroborating campus membership from room naming.
	roomSampleLimit = 5
)

// buildSnapshot assembles a snapshot from the upstream location list and an
// optional room sample grouped by location id.
func buildSnapshot(locations []zoomapi.Location, roomsByLocation map[string][]zoomapi.Room, builtAt time.Time) *Snapshot {
	nodes := make(map[string]*Node, len(locations))
	for _, loc := range locations {
		nodes[loc.ID] = &Node{
			ID:       loc.ID,
			Name:     loc.Name,
			Kind:     inferKind(loc.Type, loc.Name),
			Address:  loc.Address,
			Timezone: loc.Timezone,
		}
	}

	// Upstream nesting wins when present and sane.
	for _, loc := range locations {
		if loc.ParentLocationID == "" {
			continue
		}
		setParent(nodes, loc.ID, loc.ParentLocationID)
	}

	inferParents(nodes, roomsByLocation)
	invertChildren(nodes)

	return &Snapshot{
		Nodes:   nodes,
		Aliases: generateAliases(nodes),
		BuiltAt: builtAt,
	}
}

// inferKind classifies a location, preferring the upstream type and falling
// back to naming heuristics. Unclassifiable names get KindUnknown.
func inferKind(upstreamType, name string) Kind {
	switch strings.ToLower(strings.TrimSpace(upstreamType)) {
	case "campus":
		return KindCampus
	case "building":
		return KindBuilding
	case "floor":
		return KindFloor
	}

	switch {
	case floorNamePattern.MatchString(name):
		return KindFloor
	case buildingNamePattern.MatchString(name):
		return KindBuilding
	case campusNamePattern.MatchString(name):
		return KindCampus
	}
	return KindUnknown
}

// campusCode extracts the airport-style code from campus names like USSFO.
func campusCode(name string) string {
	if strings.HasPrefix(name, "US") && len(name) == 5 {
		return name[2:]
	}
	return ""
}

// inferParents fills in missing parent references from naming patterns and
// the room sample.
func inferParents(nodes map[string]*Node, roomsByLocation map[string][]zoomapi.Room) {
	var campuses, buildings, floors []*Node
	for _, id := range sortedIDs(nodes) {
		n := nodes[id]
		switch n.Kind {
		case KindCampus:
			campuses = append(campuses, n)
		case KindBuilding:
			buildings = append(buildings, n)
		case KindFloor:
			floors = append(floors, n)
		}
	}

	for _, n := range append(append([]*Node{}, buildings...), floors...) {
		if n.ParentID != "" {
			continue
		}
		if campus := findParentCampus(n, campuses, roomsByLocation); campus != nil {
			setParent(nodes, n.ID, campus.ID)
		}
	}

	// Floors nest under buildings when names line up; this refines the
	// campus-level attachment made above.
	for _, floor := range floors {
		if parent, ok := nodes[floor.ParentID]; ok && parent.Kind == KindBuilding {
			continue
		}
		if building := findParentBuilding(floor, buildings); building != nil {
			setParent(nodes, floor.ID, building.ID)
		}
	}
}

// findParentCampus matches a building/floor to its campus by the campus code
// appearing in the location name, or failing that in sampled room names.
func findParentCampus(n *Node, campuses []*Node, roomsByLocation map[string][]zoomapi.Room) *Node {
	for _, campus := range campuses {
		code := campusCode(campus.Name)
		if code == "" {
			continue
		}
		if strings.Contains(strings.ToLower(n.Name), strings.ToLower(code)) {
			return campus
		}
	}

	rooms := roomsByLocation[n.ID]
	if len(rooms) > roomSampleLimit {
		rooms = rooms[:roomSampleLimit]
	}
	for _, room := range rooms {
		roomName := strings.ToUpper(room.Name)
		for _, campus := range campuses {
			code := campusCode(campus.Name)
			if code != "" && strings.Contains(roomName, code) {
				return campus
			}
		}
	}
	return nil
}

// findParentBuilding matches a floor to a building by name containment or a
// shared word of meaningful length.
func findParentBuilding(floor *Node, buildings []*Node) *Node {
	floorName := strings.ToLower(floor.Name)
	for _, building := range buildings {
		buildingName := strings.ToLower(building.Name)
		if strings.Contains(floorName, buildingName) {
			return building
		}
		for _, word := range strings.Fields(floorName) {
			if len(word) >= 3 && strings.Contains(buildingName, word) {
				return building
			}
		}
	}
	return nil
}

// setParent links child under parent, refusing self-references and links that
// would make a node its own ancestor.
func setParent(nodes map[string]*Node, childID, parentID string) {
	child, okChild := nodes[childID]
	_, okParent := nodes[parentID]
	if !okChild || !okParent || childID == parentID {
		return
	}
	if isAncestor(nodes, childID, parentID) {
		return
	}
	child.ParentID = parentID
}

// isAncestor reports whether candidate appears on node's parent chain.
func isAncestor(nodes map[string]*Node, candidate, nodeID string) bool {
	visited := map[string]bool{}
	for cur := nodeID; cur != "" && !visited[cur]; {
		visited[cur] = true
		n, ok := nodes[cur]
		if !ok {
			return false
		}
		if n.ParentID == candidate {
			return true
		}
		cur = n.ParentID
	}
	return false
}

// invertChildren rebuilds every node's ChildrenIDs from parent references.
func invertChildren(nodes map[string]*Node) {
	for _, n := range nodes {
		n.ChildrenIDs = nil
	}
	for _, id := range sortedIDs(nodes) {
		n := nodes[id]
		if parent, ok := nodes[n.ParentID]; ok {
			parent.ChildrenIDs = append(parent.ChildrenIDs, n.ID)
		}
	}
}

// sortedIDs returns node ids in stable order so inference and alias
// generation are deterministic between passes over the same data.
func sortedIDs(nodes map[string]*Node) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
