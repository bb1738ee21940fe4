package rooms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
	"github.com/txn2/mcp-zoom-rooms/pkg/resolve"
	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

// fakeFetcher serves scripted room lists per location id.
type fakeFetcher struct {
	mu       sync.Mutex
	rooms    map[string][]zoomapi.Room
	failures map[string]error
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeFetcher) ListRooms(_ context.Context, opts zoomapi.RoomListOptions) (zoomapi.RoomList, error) {
	f.calls.Add(1)
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failures[opts.LocationID]; ok {
		return zoomapi.RoomList{}, err
	}
	rooms := f.rooms[opts.LocationID]
	return zoomapi.RoomList{Rooms: rooms, TotalRecords: len(rooms)}, nil
}

func floorSnapshot() *hierarchy.Snapshot {
	return &hierarchy.Snapshot{
		Nodes: map[string]*hierarchy.Node{
			"f1": {ID: "f1", Name: "Floor 1", Kind: hierarchy.KindFloor},
			"f2": {ID: "f2", Name: "Floor 2", Kind: hierarchy.KindFloor},
			"f3": {ID: "f3", Name: "Floor 3", Kind: hierarchy.KindFloor},
		},
		Aliases: map[string]string{},
		BuiltAt: time.Now(),
	}
}

func floorResolution(floorIDs ...string) *resolve.Resolution {
	return &resolve.Resolution{
		Query:       "test",
		Type:        resolve.TypeCampus,
		FloorIDs:    floorIDs,
		AliasesUsed: []string{},
	}
}

func TestFetchByResolution_MergesInResolutionOrder(t *testing.T) {
	fetcher := &fakeFetcher{rooms: map[string][]zoomapi.Room{
		"f1": {{ID: "r1", Name: "Alpha", Status: "Available"}},
		"f2": {{ID: "r2", Name: "Beta", Status: "InMeeting"}, {ID: "r3", Name: "Gamma", Status: "Available"}},
		"f3": {{ID: "r4", Name: "Delta", Status: "Offline"}},
	}}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution("f1", "f2", "f3"))

	require.Equal(t, 4, result.TotalCount)
	ids := make([]string, 0, len(result.Rooms))
	for _, room := range result.Rooms {
		ids = append(ids, room.ID)
	}
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids, "merge order follows resolution order, not completion order")
	assert.NotEmpty(t, result.RequestID)
	assert.Empty(t, result.FailedLocations)
}

func TestFetchByResolution_RoomsCarryLocationContext(t *testing.T) {
	fetcher := &fakeFetcher{rooms: map[string][]zoomapi.Room{
		"f1": {{ID: "r1", Name: "Alpha", Status: "Available"}},
	}}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution("f1"))

	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "Floor 1", result.Rooms[0].LocationContext.LocationName)
	assert.Equal(t, "campus", result.Rooms[0].LocationContext.QueryResolvedTo)
}

func TestFetchByResolution_FailuresAreIsolated(t *testing.T) {
	fetcher := &fakeFetcher{
		rooms: map[string][]zoomapi.Room{
			"f1": {{ID: "r1", Name: "Alpha", Status: "Available"}},
			"f3": {{ID: "r4", Name: "Delta", Status: "Available"}},
		},
		failures: map[string]error{"f2": fmt.Errorf("upstream 500")},
	}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution("f1", "f2", "f3"))

	assert.Equal(t, 2, result.TotalCount, "surviving locations still contribute")
	assert.Equal(t, []string{"f2"}, result.FailedLocations)
	assert.Equal(t, int32(3), fetcher.calls.Load(), "a failure must not cancel sibling fetches")
}

func TestFetchByResolution_StatusAndLocationSummaries(t *testing.T) {
	fetcher := &fakeFetcher{rooms: map[string][]zoomapi.Room{
		"f1": {
			{ID: "r1", Status: "Available"},
			{ID: "r2", Status: "Available"},
			{ID: "r3", Status: "InMeeting"},
		},
		"f2": {},
	}}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution("f1", "f2"))

	assert.Equal(t, map[string]int{"Available": 2, "InMeeting": 1}, result.StatusSummary)

	require.Contains(t, result.LocationSummary, "Floor 1")
	assert.Equal(t, 3, result.LocationSummary["Floor 1"].RoomCount)
	assert.Equal(t, "f1", result.LocationSummary["Floor 1"].LocationID)
	assert.NotContains(t, result.LocationSummary, "Floor 2", "empty locations are omitted from the summary")
}

func TestFetchByResolution_UnknownLocationKeepsID(t *testing.T) {
	// Hardcoded Denver floor ids may be absent from the snapshot; the raw id
	// then stands in for the name.
	fetcher := &fakeFetcher{rooms: map[string][]zoomapi.Room{
		"mystery-floor": {{ID: "r1", Status: "Available"}},
	}}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution("mystery-floor"))

	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "mystery-floor", result.Rooms[0].LocationContext.LocationName)
}

func TestFetchByResolution_EmptyResolution(t *testing.T) {
	fetcher := &fakeFetcher{}
	agg := New(fetcher, Config{})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution())

	assert.Equal(t, 0, result.TotalCount)
	assert.Empty(t, result.Rooms)
	assert.Equal(t, int32(0), fetcher.calls.Load())
	assert.NotEmpty(t, result.RequestID)
}

func TestFetchByResolution_ConcurrencyIsBounded(t *testing.T) {
	rooms := map[string][]zoomapi.Room{}
	floorIDs := make([]string, 20)
	for i := range floorIDs {
		id := fmt.Sprintf("floor-%02d", i)
		floorIDs[i] = id
		rooms[id] = []zoomapi.Room{{ID: id + "-room", Status: "Available"}}
	}

	fetcher := &fakeFetcher{rooms: rooms}
	agg := New(fetcher, Config{Concurrency: 2})

	result := agg.FetchByResolution(context.Background(), floorSnapshot(), floorResolution(floorIDs...))

	assert.Equal(t, 20, result.TotalCount)
	assert.LessOrEqual(t, fetcher.maxSeen.Load(), int32(2))
}

func TestNew_Defaults(t *testing.T) {
	agg := New(&fakeFetcher{}, Config{})
	assert.Equal(t, DefaultPageSize, agg.pageSize)
	assert.Equal(t, DefaultConcurrency, agg.concurrency)
}
