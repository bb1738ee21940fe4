package hierarchy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		name         string
		upstreamType string
		locName      string
		want         Kind
	}{
		{"upstream campus type", "campus", "anything", KindCampus},
		{"upstream building type", "Building", "anything", KindBuilding},
		{"upstream floor type", "floor", "anything", KindFloor},
		{"floor from name", "", "Floor 3", KindFloor},
		{"level from name", "", "Level 12", KindFloor},
		{"short floor form", "", "F7", KindFloor},
		{"tower floor form", "", "T2F14", KindFloor},
		{"building from name", "", "Building 2", KindBuilding},
		{"bldg abbreviation", "", "Main Bldg", KindBuilding},
		{"tower", "", "North Tower", KindBuilding},
		{"campus code name", "", "USSFO", KindCampus},
		{"campus code name denver", "", "USDEN", KindCampus},
		{"unclassifiable", "", "Cafeteria Annex", KindUnknown},
		{"lowercase code is not campus", "", "ussfo", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferKind(tt.upstreamType, tt.locName))
		})
	}
}

func TestCampusCode(t *testing.T) {
	assert.Equal(t, "SFO", campusCode("USSFO"))
	assert.Equal(t, "DEN", campusCode("USDEN"))
	assert.Equal(t, "", campusCode("USSANFRAN"))
	assert.Equal(t, "", campusCode("EMEA1"))
	assert.Equal(t, "", campusCode(""))
}

func TestBuildSnapshot_UpstreamParentWins(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USSFO", Type: "campus"},
		{ID: "b1", Name: "Building 1", Type: "building", ParentLocationID: "c1"},
		{ID: "f1", Name: "Floor 2", Type: "floor", ParentLocationID: "b1"},
	}

	snap := buildSnapshot(locations, nil, time.Now())

	floor, ok := snap.Node("f1")
	require.True(t, ok)
	assert.Equal(t, "b1", floor.ParentID)

	building, ok := snap.Node("b1")
	require.True(t, ok)
	assert.Equal(t, "c1", building.ParentID)
	assert.Equal(t, []string{"f1"}, building.ChildrenIDs)

	campus, ok := snap.Node("c1")
	require.True(t, ok)
	assert.Equal(t, []string{"b1"}, campus.ChildrenIDs)
}

func TestBuildSnapshot_InfersCampusFromName(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USSFO"},
		{ID: "f1", Name: "SFO Floor 2"},
	}

	snap := buildSnapshot(locations, nil, time.Now())

	floor, _ := snap.Node("f1")
	assert.Equal(t, KindFloor, floor.Kind)
	assert.Equal(t, "c1", floor.ParentID, "the campus code in the floor name attaches it to USSFO")
}

func TestBuildSnapshot_InfersCampusFromRoomSample(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USDEN"},
		{ID: "f1", Name: "Floor 14"},
	}
	rooms := map[string][]zoomapi.Room{
		"f1": {
			{ID: "r1", Name: "DEN-14-Huddle", LocationID: "f1"},
		},
	}

	snap := buildSnapshot(locations, rooms, time.Now())

	floor, _ := snap.Node("f1")
	assert.Equal(t, "c1", floor.ParentID, "room naming corroborates campus membership")
}

func TestBuildSnapshot_FloorRefinesToBuilding(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USSFO"},
		{ID: "b1", Name: "SFO Building 1"},
		{ID: "f1", Name: "SFO Building 1 Floor 2"},
	}

	snap := buildSnapshot(locations, nil, time.Now())

	floor, _ := snap.Node("f1")
	assert.Equal(t, "b1", floor.ParentID, "a floor whose name contains a building name nests under it")

	campus, _ := snap.Node("c1")
	assert.Contains(t, campus.ChildrenIDs, "b1")
	assert.NotContains(t, campus.ChildrenIDs, "f1")
}

func TestBuildSnapshot_OrphansStayParentless(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USSFO"},
		{ID: "x1", Name: "Warehouse Annex"},
	}

	snap := buildSnapshot(locations, nil, time.Now())

	orphan, _ := snap.Node("x1")
	assert.Equal(t, KindUnknown, orphan.Kind)
	assert.Empty(t, orphan.ParentID)
}

func TestSetParent_RejectsCycles(t *testing.T) {
	nodes := map[string]*Node{
		"a": {ID: "a"},
		"b": {ID: "b"},
		"c": {ID: "c"},
	}

	setParent(nodes, "b", "a")
	setParent(nodes, "c", "b")

	// a → b would close the loop a → b → c → a.
	setParent(nodes, "a", "c")
	assert.Empty(t, nodes["a"].ParentID, "cycle-closing link must be refused")

	setParent(nodes, "a", "a")
	assert.Empty(t, nodes["a"].ParentID, "self-reference must be refused")

	setParent(nodes, "a", "missing")
	assert.Empty(t, nodes["a"].ParentID, "link to an unknown parent must be refused")
}

func TestBuildSnapshot_CyclicUpstreamPayload(t *testing.T) {
	// Upstream claims each location is the other's parent. The snapshot must
	// still build and stay traversable.
	locations := []zoomapi.Location{
		{ID: "a", Name: "Building 1", Type: "building", ParentLocationID: "b"},
		{ID: "b", Name: "Building 2", Type: "building", ParentLocationID: "a"},
	}

	snap := buildSnapshot(locations, nil, time.Now())

	// One direction survives, the cycle-closing one is dropped.
	a, _ := snap.Node("a")
	b, _ := snap.Node("b")
	cycleClosed := a.ParentID == "b" && b.ParentID == "a"
	assert.False(t, cycleClosed)

	// Traversal terminates.
	assert.NotPanics(t, func() {
		snap.DescendantFloors("a")
		snap.DescendantFloors("b")
		snap.AncestorCampus("a")
	})
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	locations := []zoomapi.Location{
		{ID: "c1", Name: "USSFO"},
		{ID: "c2", Name: "USDEN"},
		{ID: "f1", Name: "SFO Floor 1"},
		{ID: "f2", Name: "DEN Floor 1"},
	}

	first := buildSnapshot(locations, nil, time.Now())
	second := buildSnapshot(locations, nil, time.Now())

	assert.Equal(t, first.Aliases, second.Aliases)
	for id, n := range first.Nodes {
		other, ok := second.Node(id)
		require.True(t, ok)
		assert.Equal(t, n.ParentID, other.ParentID)
		assert.Equal(t, n.ChildrenIDs, other.ChildrenIDs)
	}
}
