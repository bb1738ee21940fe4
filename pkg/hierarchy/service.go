package hierarchy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

const (
	// DefaultTTL is how long a snapshot is served before a rebuild.
	DefaultTTL = 5 * time.Minute

	// DefaultPageSize is the page size for location and room-sample fetches.
	DefaultPageSize = 300
)

// Lister is the slice of the Zoom client the discovery service consumes.
type Lister interface {
	ListLocations(ctx context.Context, pageSize int) (zoomapi.LocationList, error)
	ListRooms(ctx context.Context, opts zoomapi.RoomListOptions) (zoomapi.RoomList, error)
}

// Config holds discovery service settings.
type Config struct {
	TTL      time.Duration `yaml:"ttl"`
	PageSize int           `yaml:"page_size"`
}

// Service discovers the location hierarchy and caches it for a short TTL.
// Snapshot installation is a single pointer swap: readers always observe a
// complete snapshot, old or new. Concurrent refreshes are not de-duplicated;
// the later completion wins.
type Service struct {
	client   Lister
	ttl      time.Duration
	pageSize int
	now      func() time.Time

	mu      sync.Mutex
	current *Snapshot
}

// New creates a discovery service.
func New(client Lister, cfg Config) *Service {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Service{
		client:   client,
		ttl:      cfg.TTL,
		pageSize: cfg.PageSize,
		now:      time.Now,
	}
}

// Snapshot returns the current hierarchy, rebuilding it when stale.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.cached(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// cached returns the live snapshot when it is within the TTL window.
func (s *Service) cached() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.now().Sub(s.current.BuiltAt) < s.ttl {
		return s.current
	}
	return nil
}

// Refresh performs a discovery pass and installs the result as the current
// snapshot, replacing the previous one wholesale.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	locations, err := s.client.ListLocations(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}

	// The room sample only corroborates naming patterns; discovery proceeds
	// without it when the fetch fails.
	roomsByLocation := map[string][]zoomapi.Room{}
	rooms, err := s.client.ListRooms(ctx, zoomapi.RoomListOptions{PageSize: s.pageSize})
	if err != nil {
		slog.Warn("room sample fetch failed, building hierarchy from locations only", "error", err)
	} else {
		for _, room := range rooms.Rooms {
			if room.LocationID != "" {
				roomsByLocation[room.LocationID] = append(roomsByLocation[room.LocationID], room)
			}
		}
	}

	snap := buildSnapshot(locations.Locations, roomsByLocation, s.now())

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	slog.Debug("hierarchy snapshot installed",
		"locations", len(snap.Nodes), "aliases", len(snap.Aliases))
	return snap, nil
}
