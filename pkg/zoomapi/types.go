// Package zoomapi provides an authenticated client for the Zoom REST API,
// including server-to-server OAuth token lifecycle management.
package zoomapi

// Location is a single entry from the Zoom rooms/locations listing. Type and
// ParentLocationID are optional; not all accounts populate them.
type Location struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type,omitempty"`
	ParentLocationID string `json:"parent_location_id,omitempty"`
	Address          string `json:"address,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
}

// LocationList is the response body for the rooms/locations endpoint.
type LocationList struct {
	Locations    []Location `json:"locations"`
	TotalRecords int        `json:"total_records"`
}

// Room is a single entry from the Zoom rooms listing.
type Room struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	RoomType   string   `json:"room_type,omitempty"`
	Status     string   `json:"status,omitempty"`
	LocationID string   `json:"location_id,omitempty"`
	Capacity   int      `json:"capacity,omitempty"`
	DeviceIP   string   `json:"device_ip,omitempty"`
	Health     string   `json:"health,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

// RoomList is the response body for the rooms endpoint.
type RoomList struct {
	Rooms        []Room `json:"rooms"`
	TotalRecords int    `json:"total_records"`
}

// RoomListOptions narrows a room listing request.
type RoomListOptions struct {
	PageSize   int
	LocationID string
}
