package resolve

import (
	"strings"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

const (
	// scoreThreshold is the fixed acceptance threshold for fuzzy matches.
	scoreThreshold = 30

	// scoreBand keeps matches within this distance of the best score when
	// building a multiple-match result.
	scoreBand = 10
)

// fuzzyScore rates how well a normalized query matches a node name on a
// 0-100 scale. The piecewise bands favor exact and campus-code matches, then
// substring containment, then word-level matches, with raw character overlap
// as the loosest tier.
func fuzzyScore(query string, n *hierarchy.Node) float64 {
	name := strings.ToLower(n.Name)

	if query == name {
		return 100
	}

	if n.Kind == hierarchy.KindCampus && strings.HasPrefix(n.Name, "US") && len(n.Name) == 5 {
		code := strings.ToLower(n.Name[2:])
		switch {
		case query == code:
			return 95
		case query == code[:2]:
			return 90
		case strings.Contains(code, query) || strings.HasPrefix(code, query):
			return 85
		}
	}

	if strings.Contains(name, query) {
		// Prefer the shortest containing name.
		return 80 - float64(len(name)-len(query))*2
	}
	if strings.Contains(query, name) {
		return 75
	}

	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, query) {
			return 70
		}
		if strings.Contains(word, query) {
			return 60
		}
	}

	if overlap := charOverlap(query, name); overlap >= 2 {
		return min(50, float64(overlap)*8)
	}

	return 0
}

// charOverlap counts distinct characters shared by two strings.
func charOverlap(a, b string) int {
	inA := map[rune]bool{}
	for _, r := range a {
		inA[r] = true
	}
	count := 0
	for _, r := range b {
		if inA[r] {
			count++
			inA[r] = false
		}
	}
	return count
}
