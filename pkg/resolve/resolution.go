// Package resolve turns free-text location queries into sets of hierarchy
// node identifiers using an ordered list of matching strategies.
package resolve

import (
	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

// Type classifies how a query was resolved.
type Type string

// Resolution types.
const (
	TypeDenverBuilding Type = "denver_building"
	TypeCampus         Type = "campus"
	TypeBuilding       Type = "building"
	TypeFloor          Type = "floor"
	TypeMultiple       Type = "multiple"
	TypeNone           Type = "none"
)

// Resolution is the engine's output for one query. It is constructed fresh
// per call and immutable once returned.
type Resolution struct {
	Query string `json:"query"`
	Type  Type   `json:"resolution_type"`

	// Nodes are the matched hierarchy nodes at resolution granularity.
	// Empty exactly when Type is TypeNone.
	Nodes []*hierarchy.Node `json:"resolved_nodes"`

	// FloorIDs are the fetch units: room fetching always happens at floor
	// granularity, so campus and building matches expand to their
	// descendant floors here.
	FloorIDs []string `json:"floor_ids,omitempty"`

	// AliasesUsed records which aliases were consulted, for observability.
	AliasesUsed []string `json:"aliases_used"`

	// Score is the confidence of the fuzzy path; zero on other paths.
	Score float64 `json:"score,omitempty"`

	// IncludesHierarchy reports whether the match covers a subtree rather
	// than a single leaf.
	IncludesHierarchy bool `json:"includes_hierarchy"`
}

// expandFloors maps resolved nodes to floor-granularity fetch units. Floor
// and unclassified nodes stand for themselves; campus and building nodes
// expand to their descendant floors, falling back to the node itself when
// inference found no floors beneath it.
func expandFloors(snap *hierarchy.Snapshot, nodes []*hierarchy.Node) []string {
	var ids []string
	seen := map[string]bool{}

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, n := range nodes {
		switch n.Kind {
		case hierarchy.KindCampus, hierarchy.KindBuilding:
			floors := snap.DescendantFloors(n.ID)
			if len(floors) == 0 {
				add(n.ID)
				continue
			}
			for _, floor := range floors {
				add(floor.ID)
			}
		default:
			add(n.ID)
		}
	}
	return ids
}
