package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

var (
	buildingNumPattern = regexp.MustCompile(`building\s+(\d+)`)
	floorNumPattern    = regexp.MustCompile(`floor\s+(\d+)`)
)

// campusStructure gathers a campus with its buildings and floors, including
// floors nested under buildings, so numbered queries can be interpreted
// against what the campus actually contains.
type campusStructure struct {
	campus    *hierarchy.Node
	buildings []*hierarchy.Node
	floors    []*hierarchy.Node
}

// analyzeCampuses builds a structure per campus from the snapshot.
func analyzeCampuses(snap *hierarchy.Snapshot) []campusStructure {
	var structures []campusStructure
	for _, campus := range snap.ByKind(hierarchy.KindCampus) {
		st := campusStructure{campus: campus}
		for _, childID := range campus.ChildrenIDs {
			child, ok := snap.Node(childID)
			if !ok {
				continue
			}
			switch child.Kind {
			case hierarchy.KindBuilding:
				st.buildings = append(st.buildings, child)
				for _, grandchildID := range child.ChildrenIDs {
					if grandchild, ok := snap.Node(grandchildID); ok && grandchild.Kind == hierarchy.KindFloor {
						st.floors = append(st.floors, grandchild)
					}
				}
			case hierarchy.KindFloor:
				st.floors = append(st.floors, child)
			}
		}
		structures = append(structures, st)
	}
	return structures
}

// matchesCode reports whether a short query code refers to this campus,
// accepting the full campus code (sfo), its two-letter form (sf), or a
// prefix, and falling back to substring presence in the campus name.
func (st campusStructure) matchesCode(code string) bool {
	name := strings.ToLower(st.campus.Name)
	if campusCode := campusCodeOf(st.campus); campusCode != "" {
		if code == campusCode || code == campusCode[:2] || strings.HasPrefix(campusCode, code) {
			return true
		}
		return false
	}
	return strings.Contains(name, code)
}

// campusCodeOf extracts the lowercase code from campus names like USSFO.
func campusCodeOf(n *hierarchy.Node) string {
	if strings.HasPrefix(n.Name, "US") && len(n.Name) == 5 {
		return strings.ToLower(n.Name[2:])
	}
	return ""
}

// numberedBuilding finds the building whose name carries the given number.
func (st campusStructure) numberedBuilding(number int) *hierarchy.Node {
	return findNumbered(st.buildings, buildingNumPattern, number)
}

// numberedFloor finds the floor whose name carries the given number.
func (st campusStructure) numberedFloor(number int) *hierarchy.Node {
	return findNumbered(st.floors, floorNumPattern, number)
}

// hasNumberedBuildings reports whether more than one building is numbered;
// a single numbered building gives the number no discriminating power.
func (st campusStructure) hasNumberedBuildings() bool {
	return countNumbered(st.buildings, buildingNumPattern) > 1
}

// hasNumberedFloors reports whether more than one floor is numbered.
func (st campusStructure) hasNumberedFloors() bool {
	return countNumbered(st.floors, floorNumPattern) > 1
}

func findNumbered(nodes []*hierarchy.Node, pattern *regexp.Regexp, number int) *hierarchy.Node {
	for _, n := range nodes {
		if m := pattern.FindStringSubmatch(strings.ToLower(n.Name)); m != nil {
			if got, err := strconv.Atoi(m[1]); err == nil && got == number {
				return n
			}
		}
	}
	return nil
}

func countNumbered(nodes []*hierarchy.Node, pattern *regexp.Regexp) int {
	count := 0
	for _, n := range nodes {
		if pattern.MatchString(strings.ToLower(n.Name)) {
			count++
		}
	}
	return count
}
