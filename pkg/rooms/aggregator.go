// Package rooms fans room-listing requests out across resolved floor nodes
// and merges the results best-effort.
package rooms

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
	"github.com/txn2/mcp-zoom-rooms/pkg/resolve"
	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

const (
	// DefaultPageSize is the room page size per location fetch.
	DefaultPageSize = 100

	// DefaultConcurrency bounds simultaneous per-location fetches.
	DefaultConcurrency = 4
)

// Fetcher is the slice of the Zoom client the aggregator consumes.
type Fetcher interface {
	ListRooms(ctx context.Context, opts zoomapi.RoomListOptions) (zoomapi.RoomList, error)
}

// Config holds aggregator settings.
type Config struct {
	PageSize    int `yaml:"page_size"`
	Concurrency int `yaml:"concurrency"`
}

// Aggregator expands a resolution into per-floor room fetches.
type Aggregator struct {
	client      Fetcher
	pageSize    int
	concurrency int
}

// New creates an aggregator.
func New(client Fetcher, cfg Config) *Aggregator {
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Aggregator{
		client:      client,
		pageSize:    cfg.PageSize,
		concurrency: cfg.Concurrency,
	}
}

// LocationContext ties a room back to the location it was fetched from.
type LocationContext struct {
	LocationName    string `json:"location_name"`
	QueryResolvedTo string `json:"query_resolved_to"`
}

// RoomInfo is one room in an aggregated result.
type RoomInfo struct {
	zoomapi.Room
	LocationContext LocationContext `json:"location_context"`
}

// LocationRooms summarizes one location's contribution to a result.
type LocationRooms struct {
	RoomCount  int    `json:"room_count"`
	LocationID string `json:"location_id"`
}

// Result is a merged fan-out result. Failed locations are listed rather than
// failing the whole aggregation.
type Result struct {
	RequestID       string                   `json:"request_id"`
	Rooms           []RoomInfo               `json:"rooms"`
	TotalCount      int                      `json:"total_count"`
	LocationSummary map[string]LocationRooms `json:"location_summary"`
	StatusSummary   map[string]int           `json:"status_summary"`
	FailedLocations []string                 `json:"failed_locations,omitempty"`
}

// FetchByResolution fetches rooms for every floor id in the resolution and
// merges them in resolution order. One location's failure never cancels the
// others; it is logged, recorded, and skipped.
func (a *Aggregator) FetchByResolution(ctx context.Context, snap *hierarchy.Snapshot, res *resolve.Resolution) *Result {
	result := &Result{
		RequestID:       uuid.NewString(),
		LocationSummary: map[string]LocationRooms{},
		StatusSummary:   map[string]int{},
	}

	perLocation := make([][]RoomInfo, len(res.FloorIDs))
	var mu sync.Mutex

	g := &errgroup.Group{}
	g.SetLimit(a.concurrency)

	for i, locationID := range res.FloorIDs {
		g.Go(func() error {
			list, err := a.client.ListRooms(ctx, zoomapi.RoomListOptions{
				PageSize:   a.pageSize,
				LocationID: locationID,
			})
			if err != nil {
				slog.Warn("room fetch failed for location",
					"request_id", result.RequestID, "location_id", locationID, "error", err)
				mu.Lock()
				result.FailedLocations = append(result.FailedLocations, locationID)
				mu.Unlock()
				return nil
			}

			locationName := locationID
			if n, ok := snap.Node(locationID); ok {
				locationName = n.Name
			}

			rooms := make([]RoomInfo, 0, len(list.Rooms))
			for _, room := range list.Rooms {
				rooms = append(rooms, RoomInfo{
					Room: room,
					LocationContext: LocationContext{
						LocationName:    locationName,
						QueryResolvedTo: string(res.Type),
					},
				})
			}

			mu.Lock()
			perLocation[i] = rooms
			if len(rooms) > 0 {
				result.LocationSummary[locationName] = LocationRooms{
					RoomCount:  len(rooms),
					LocationID: locationID,
				}
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers swallow their own errors; Wait only synchronizes.
	_ = g.Wait()

	for _, rooms := range perLocation {
		for _, room := range rooms {
			result.Rooms = append(result.Rooms, room)
			result.StatusSummary[room.Status]++
		}
	}
	result.TotalCount = len(result.Rooms)
	return result
}
