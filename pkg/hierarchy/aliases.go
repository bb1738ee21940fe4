package hierarchy

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	buildingNumPattern = regexp.MustCompile(`building\s+(\d+)`)
	floorNumPattern    = regexp.MustCompile(`floor\s+(\d+)`)
)

// cityNames maps campus codes to common spoken names.
var cityNames = map[string][]string{
	"SFO": {"san francisco", "sf"},
	"NYC": {"new york", "ny"},
	"DEN": {"denver"},
	"LAX": {"los angeles", "la"},
	"CHI": {"chicago"},
	"ATL": {"atlanta"},
}

// generateAliases builds the alias → node id table for a snapshot. Nodes are
// visited in sorted id order so collisions resolve the same way every pass.
func generateAliases(nodes map[string]*Node) map[string]string {
	aliases := make(map[string]string)
	for _, id := range sortedIDs(nodes) {
		n := nodes[id]
		for _, alias := range nodeAliases(n) {
			aliases[strings.ToLower(alias)] = n.ID
		}
	}
	return aliases
}

// nodeAliases generates the aliases for one node based on its kind and name.
func nodeAliases(n *Node) []string {
	aliases := []string{strings.ToLower(n.Name)}

	switch n.Kind {
	case KindCampus:
		code := campusCode(n.Name)
		if code == "" {
			break
		}
		lower := strings.ToLower(code)
		aliases = append(aliases, lower, lower+"1", lower+" 1")
		aliases = append(aliases, cityNames[code]...)

	case KindBuilding:
		if m := buildingNumPattern.FindStringSubmatch(strings.ToLower(n.Name)); m != nil {
			num := m[1]
			aliases = append(aliases,
				fmt.Sprintf("bldg %s", num),
				fmt.Sprintf("building%s", num),
				fmt.Sprintf("b%s", num),
			)
		}

	case KindFloor:
		if m := floorNumPattern.FindStringSubmatch(strings.ToLower(n.Name)); m != nil {
			num := m[1]
			aliases = append(aliases,
				fmt.Sprintf("floor%s", num),
				fmt.Sprintf("f%s", num),
				fmt.Sprintf("%sf", num),
				fmt.Sprintf("level %s", num),
			)
		}
	}

	return aliases
}
