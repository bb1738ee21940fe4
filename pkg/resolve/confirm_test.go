package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
)

func TestConfirmation_Campus(t *testing.T) {
	snap := sfoSnapshot()
	res, err := newTestResolver(snap).Resolve(context.Background(), "sfo")
	require.NoError(t, err)

	got := Confirmation(res, snap)
	assert.Equal(t, "✅ Showing all 'sfo' rooms from USSFO campus in Zoom across 1 floors (Floor 2)", got)
}

func TestConfirmation_CampusWithoutFloors(t *testing.T) {
	snap := snapshotOf(map[string]*hierarchy.Node{
		"c1": {ID: "c1", Name: "USATL", Kind: hierarchy.KindCampus},
	}, nil)
	res, err := newTestResolver(snap).Resolve(context.Background(), "atl")
	require.NoError(t, err)

	got := Confirmation(res, snap)
	assert.Equal(t, "✅ Showing all 'atl' rooms from USATL campus in Zoom", got)
}

func TestConfirmation_Building(t *testing.T) {
	snap := sfoSnapshot()
	res, err := newTestResolver(snap).Resolve(context.Background(), "Building 1")
	require.NoError(t, err)

	got := Confirmation(res, snap)
	assert.Equal(t, "✅ Showing 'Building 1' rooms from Building 1 in USSFO site in Zoom", got)
}

func TestConfirmation_FloorWithoutCampus(t *testing.T) {
	snap := snapshotOf(map[string]*hierarchy.Node{
		"f1": {ID: "f1", Name: "Floor 9", Kind: hierarchy.KindFloor},
	}, nil)
	res, err := newTestResolver(snap).Resolve(context.Background(), "Floor 9")
	require.NoError(t, err)

	got := Confirmation(res, snap)
	assert.Equal(t, "✅ Showing 'Floor 9' rooms from Floor 9 in Unknown Campus site in Zoom", got)
}

func TestConfirmation_DenverBuildings(t *testing.T) {
	snap := sfoSnapshot()
	r := newTestResolver(snap)

	t.Run("single floor building", func(t *testing.T) {
		res, err := r.Resolve(context.Background(), "den1")
		require.NoError(t, err)

		got := Confirmation(res, snap)
		assert.Contains(t, got, "Denver Building 1")
		assert.Contains(t, got, "in USDEN site in Zoom")
		assert.NotContains(t, got, "across")
	})

	t.Run("multi floor building", func(t *testing.T) {
		res, err := r.Resolve(context.Background(), "den2")
		require.NoError(t, err)

		got := Confirmation(res, snap)
		assert.Contains(t, got, "Denver Building 2")
		assert.Contains(t, got, "across 3 floors")
		assert.Contains(t, got, "in USDEN site in Zoom")
	})
}

func TestConfirmation_Multiple(t *testing.T) {
	snap := snapshotOf(map[string]*hierarchy.Node{
		"c1":  {ID: "c1", Name: "USSFO", Kind: hierarchy.KindCampus},
		"c2":  {ID: "c2", Name: "USNYC", Kind: hierarchy.KindCampus},
		"f1a": {ID: "f1a", Name: "Floor 1", Kind: hierarchy.KindFloor, ParentID: "c1"},
		"f1b": {ID: "f1b", Name: "Floor 1", Kind: hierarchy.KindFloor, ParentID: "c2"},
	}, nil)
	res, err := newTestResolver(snap).Resolve(context.Background(), "Floor 1")
	require.NoError(t, err)
	require.Equal(t, TypeMultiple, res.Type)

	got := Confirmation(res, snap)
	assert.Equal(t, "🔍 Found multiple matches for 'Floor 1': Floor 1, Floor 1 in Zoom", got)
}

func TestConfirmation_None(t *testing.T) {
	snap := sfoSnapshot()
	res, err := newTestResolver(snap).Resolve(context.Background(), "atlantis")
	require.NoError(t, err)
	require.Equal(t, TypeNone, res.Type)

	got := Confirmation(res, snap)
	assert.Equal(t, "No Zoom locations matched 'atlantis'", got)
}
