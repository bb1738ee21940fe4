// Package hierarchy discovers the campus/building/floor location graph from
// the Zoom API and caches it as immutable snapshots.
package hierarchy

import (
	"sort"
	"strings"
	"time"
)

// Kind classifies a location node within the physical hierarchy.
type Kind string

// Node kinds. Unknown is a first-class outcome of inference, not an error.
const (
	KindCampus   Kind = "campus"
	KindBuilding Kind = "building"
	KindFloor    Kind = "floor"
	KindUnknown  Kind = "unknown"
)

// Node is one location in the hierarchy graph. The graph is a forest: a node
// references at most one parent and never owns it.
type Node struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Address     string   `json:"address,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	ChildrenIDs []string `json:"children_ids,omitempty"`
}

// Summary counts nodes per kind.
type Summary struct {
	Campuses  int `json:"campuses"`
	Buildings int `json:"buildings"`
	Floors    int `json:"floors"`
	Unknown   int `json:"unknown"`
	Total     int `json:"total"`
}

// Snapshot is an immutable, timestamped copy of the full hierarchy graph.
// It is replaced wholesale on refresh and never mutated in place.
type Snapshot struct {
	Nodes   map[string]*Node  `json:"nodes"`
	Aliases map[string]string `json:"aliases"`
	BuiltAt time.Time         `json:"built_at"`
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id string) (*Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// ByKind returns all nodes of a kind, ordered by name for stable output.
func (s *Snapshot) ByKind(kind Kind) []*Node {
	var nodes []*Node
	for _, n := range s.Nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// AliasTarget resolves a generated alias to a node id.
func (s *Snapshot) AliasTarget(alias string) (string, bool) {
	id, ok := s.Aliases[strings.ToLower(alias)]
	return id, ok
}

// AliasesOf returns the aliases pointing at a node, sorted.
func (s *Snapshot) AliasesOf(id string) []string {
	var aliases []string
	for alias, target := range s.Aliases {
		if target == id {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// DescendantFloors returns all floor-kind nodes in the subtree rooted at id,
// ordered by name. The visited guard makes traversal safe even if a corrupt
// upstream payload produced a cyclic parent reference.
func (s *Snapshot) DescendantFloors(id string) []*Node {
	var floors []*Node
	visited := map[string]bool{}

	var walk func(string)
	walk = func(nodeID string) {
		if visited[nodeID] {
			return
		}
		visited[nodeID] = true
		n, ok := s.Nodes[nodeID]
		if !ok {
			return
		}
		if n.ID != id && n.Kind == KindFloor {
			floors = append(floors, n)
		}
		for _, childID := range n.ChildrenIDs {
			walk(childID)
		}
	}
	walk(id)

	sort.Slice(floors, func(i, j int) bool {
		if floors[i].Name != floors[j].Name {
			return floors[i].Name < floors[j].Name
		}
		return floors[i].ID < floors[j].ID
	})
	return floors
}

// DescendantCount returns the number of nodes below id.
func (s *Snapshot) DescendantCount(id string) int {
	count := 0
	visited := map[string]bool{}

	var walk func(string)
	walk = func(nodeID string) {
		if visited[nodeID] {
			return
		}
		visited[nodeID] = true
		n, ok := s.Nodes[nodeID]
		if !ok {
			return
		}
		for _, childID := range n.ChildrenIDs {
			count++
			walk(childID)
		}
	}
	walk(id)
	return count
}

// AncestorCampus walks parent references up from id to the enclosing campus.
func (s *Snapshot) AncestorCampus(id string) (*Node, bool) {
	visited := map[string]bool{}
	for cur := id; cur != "" && !visited[cur]; {
		visited[cur] = true
		n, ok := s.Nodes[cur]
		if !ok {
			return nil, false
		}
		if n.Kind == KindCampus {
			return n, true
		}
		cur = n.ParentID
	}
	return nil, false
}

// Summarize counts nodes per kind.
func (s *Snapshot) Summarize() Summary {
	sum := Summary{Total: len(s.Nodes)}
	for _, n := range s.Nodes {
		switch n.Kind {
		case KindCampus:
			sum.Campuses++
		case KindBuilding:
			sum.Buildings++
		case KindFloor:
			sum.Floors++
		default:
			sum.Unknown++
		}
	}
	return sum
}
