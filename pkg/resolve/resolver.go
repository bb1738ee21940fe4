package resolve

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

// numberedQueryPattern matches compact code queries like sf1, den2, nyc.
var numberedQueryPattern = regexp.MustCompile(`^([a-z]{2,4})(\d*)$`)

// SnapshotProvider supplies the hierarchy snapshot the engine resolves
// against.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*hierarchy.Snapshot, error)
}

// Resolver resolves free-text location queries. Strategies run in fixed
// priority order and the first hit wins: hardcoded Denver aliases, then
// numbered code patterns, then direct/fuzzy name matching. A query matching
// nothing yields TypeNone, never an error; only a failed hierarchy fetch is
// an error.
type Resolver struct {
	hierarchy SnapshotProvider
	denver    map[string]DenverAlias
}

// strategy attempts one resolution approach; nil means "not applicable, try
// the next one".
type strategy func(query string, snap *hierarchy.Snapshot) *Resolution

// New creates a resolver. A nil alias slice selects the built-in Denver
// table; an explicit empty slice disables the override stage.
func New(provider SnapshotProvider, aliases []DenverAlias) *Resolver {
	if aliases == nil {
		aliases = DefaultDenverAliases()
	}
	denver := make(map[string]DenverAlias, len(aliases))
	for _, alias := range aliases {
		denver[strings.ToLower(alias.Key)] = alias
	}
	return &Resolver{hierarchy: provider, denver: denver}
}

// DenverAliases returns the configured override table, sorted by key.
func (r *Resolver) DenverAliases() []DenverAlias {
	aliases := make([]DenverAlias, 0, len(r.denver))
	for _, alias := range r.denver {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Key < aliases[j].Key })
	return aliases
}

// Resolve maps a query to hierarchy nodes.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Resolution, error) {
	snap, err := r.hierarchy.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return r.resolveAgainst(query, snap), nil
}

// resolveAgainst runs the strategy chain against one snapshot.
func (r *Resolver) resolveAgainst(query string, snap *hierarchy.Snapshot) *Resolution {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, s := range []strategy{r.denverAlias, r.numberedPattern, r.nameMatch} {
		if res := s(normalized, snap); res != nil {
			res.Query = query
			return res
		}
	}

	return &Resolution{
		Query:       query,
		Type:        TypeNone,
		AliasesUsed: []string{},
	}
}

// denverAlias resolves hardcoded building aliases, bypassing the dynamic
// graph entirely.
func (r *Resolver) denverAlias(query string, snap *hierarchy.Snapshot) *Resolution {
	alias, ok := r.denver[query]
	if !ok {
		return nil
	}

	nodes := make([]*hierarchy.Node, 0, len(alias.FloorIDs))
	for _, floorID := range alias.FloorIDs {
		if n, ok := snap.Node(floorID); ok {
			nodes = append(nodes, n)
			continue
		}
		// The alias table is authoritative even when the snapshot has not
		// (yet) seen the floor.
		nodes = append(nodes, &hierarchy.Node{ID: floorID, Name: floorID, Kind: hierarchy.KindFloor})
	}

	return &Resolution{
		Type:              TypeDenverBuilding,
		Nodes:             nodes,
		FloorIDs:          append([]string(nil), alias.FloorIDs...),
		AliasesUsed:       []string{"denver_" + alias.Key + "_hardcoded"},
		IncludesHierarchy: true,
	}
}

// numberedPattern resolves compact queries like "sf1" or "nyc2": a campus
// code plus an optional building/floor number, interpreted against what the
// campus actually contains.
func (r *Resolver) numberedPattern(query string, snap *hierarchy.Snapshot) *Resolution {
	m := numberedQueryPattern.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	code, numberText := m[1], m[2]

	var matched []campusStructure
	for _, st := range analyzeCampuses(snap) {
		if st.matchesCode(code) {
			matched = append(matched, st)
		}
	}

	switch len(matched) {
	case 0:
		return nil
	case 1:
		return r.interpretNumbered(matched[0], code, numberText, snap)
	default:
		nodes := make([]*hierarchy.Node, 0, len(matched))
		for _, st := range matched {
			nodes = append(nodes, st.campus)
		}
		return &Resolution{
			Type:              TypeMultiple,
			Nodes:             nodes,
			FloorIDs:          expandFloors(snap, nodes),
			AliasesUsed:       []string{code},
			IncludesHierarchy: true,
		}
	}
}

// interpretNumbered decides what the numeric suffix means for one campus:
// numbered buildings take priority over numbered floors, and an
// uninterpretable number falls back to the whole campus.
func (r *Resolver) interpretNumbered(st campusStructure, code, numberText string, snap *hierarchy.Snapshot) *Resolution {
	if numberText == "" {
		return &Resolution{
			Type:              TypeCampus,
			Nodes:             []*hierarchy.Node{st.campus},
			FloorIDs:          expandFloors(snap, []*hierarchy.Node{st.campus}),
			AliasesUsed:       []string{code},
			IncludesHierarchy: true,
		}
	}

	number, err := strconv.Atoi(numberText)
	if err != nil {
		return nil
	}
	campusName := strings.ToLower(st.campus.Name)

	if st.hasNumberedBuildings() {
		if building := st.numberedBuilding(number); building != nil {
			return &Resolution{
				Type:              TypeBuilding,
				Nodes:             []*hierarchy.Node{building},
				FloorIDs:          expandFloors(snap, []*hierarchy.Node{building}),
				AliasesUsed:       []string{campusName + "_building_" + numberText},
				IncludesHierarchy: true,
			}
		}
	}

	if st.hasNumberedFloors() {
		if floor := st.numberedFloor(number); floor != nil {
			return &Resolution{
				Type:        TypeFloor,
				Nodes:       []*hierarchy.Node{floor},
				FloorIDs:    []string{floor.ID},
				AliasesUsed: []string{campusName + "_floor_" + numberText},
			}
		}
	}

	return &Resolution{
		Type:              TypeCampus,
		Nodes:             []*hierarchy.Node{st.campus},
		FloorIDs:          expandFloors(snap, []*hierarchy.Node{st.campus}),
		AliasesUsed:       []string{campusName + "_unclear_" + numberText},
		IncludesHierarchy: true,
	}
}

// scoredNode pairs a node with its fuzzy score.
type scoredNode struct {
	node  *hierarchy.Node
	score float64
}

// nameMatch scores the query against every node name, keeping matches above
// the acceptance threshold. A lone winner resolves directly; several matches
// within the score band of the best produce TypeMultiple. Ties prefer the
// node with more descendants, so a broad query resolves broadly.
func (r *Resolver) nameMatch(query string, snap *hierarchy.Snapshot) *Resolution {
	if query == "" {
		return nil
	}

	var matches []scoredNode
	for _, id := range sortedNodeIDs(snap) {
		n := snap.Nodes[id]
		if score := fuzzyScore(query, n); score >= scoreThreshold {
			matches = append(matches, scoredNode{node: n, score: score})
		}
	}

	if len(matches) == 0 {
		return r.aliasFallback(query, snap)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		di, dj := snap.DescendantCount(matches[i].node.ID), snap.DescendantCount(matches[j].node.ID)
		if di != dj {
			return di > dj
		}
		return matches[i].node.Name < matches[j].node.Name
	})

	best := matches[0].score
	var band []*hierarchy.Node
	for _, m := range matches {
		if m.score >= best-scoreBand {
			band = append(band, m.node)
		}
	}

	if len(band) == 1 {
		return r.singleMatch(band[0], query, best, snap)
	}

	return &Resolution{
		Type:              TypeMultiple,
		Nodes:             band,
		FloorIDs:          expandFloors(snap, band),
		AliasesUsed:       []string{query},
		Score:             best,
		IncludesHierarchy: true,
	}
}

// aliasFallback consults the generated alias table when scoring found
// nothing; short forms like "bldg 2" live here.
func (r *Resolver) aliasFallback(query string, snap *hierarchy.Snapshot) *Resolution {
	id, ok := snap.AliasTarget(query)
	if !ok {
		return nil
	}
	n, ok := snap.Node(id)
	if !ok {
		return nil
	}
	return r.singleMatch(n, query, 0, snap)
}

// singleMatch builds the resolution for one matched node.
func (r *Resolver) singleMatch(n *hierarchy.Node, query string, score float64, snap *hierarchy.Snapshot) *Resolution {
	res := &Resolution{
		Nodes:             []*hierarchy.Node{n},
		FloorIDs:          expandFloors(snap, []*hierarchy.Node{n}),
		AliasesUsed:       []string{query},
		Score:             score,
		IncludesHierarchy: n.Kind == hierarchy.KindCampus || n.Kind == hierarchy.KindBuilding,
	}

	switch n.Kind {
	case hierarchy.KindCampus:
		res.Type = TypeCampus
	case hierarchy.KindBuilding:
		res.Type = TypeBuilding
	default:
		// Unclassified nodes are fetched directly, which is floor
		// granularity as far as downstream fetching is concerned.
		res.Type = TypeFloor
	}
	return res
}

// sortedNodeIDs returns snapshot node ids in stable order.
func sortedNodeIDs(snap *hierarchy.Snapshot) []string {
	ids := make([]string, 0, len(snap.Nodes))
	for id := range snap.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
