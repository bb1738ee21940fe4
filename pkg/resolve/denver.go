package resolve

// DenverAlias is a fixed override bridging a known structural mismatch
// between the upstream hierarchy and the Denver room-naming convention:
// Zoom models USDEN as floors only, while rooms are named per building.
// Aliases are consulted before any dynamic matching and fully short-circuit
// it on a hit.
type DenverAlias struct {
	Key         string   `yaml:"key" json:"key"`
	Description string   `yaml:"description" json:"description"`
	FloorIDs    []string `yaml:"floor_ids" json:"floor_ids"`

	// RoomPrefix documents the room-naming convention covered by the alias.
	// It is confirmation text only, never a filter.
	RoomPrefix string `yaml:"room_prefix" json:"room_prefix"`
}

// DefaultDenverAliases returns the built-in Denver building table. The floor
// ids come from room-naming analysis of the reference account and are
// overridable in configuration.
func DefaultDenverAliases() []DenverAlias {
	return []DenverAlias{
		{
			Key:         "den1",
			Description: "Denver Building 1",
			FloorIDs:    []string{"xx14SBuZSuCRHd7jZBsmzw"}, // Floor 3, where DEN-1-* rooms live
			RoomPrefix:  "DEN-1-",
		},
		{
			Key:         "den2",
			Description: "Denver Building 2",
			FloorIDs: []string{
				"zh10l_aJT6CkImBHJn4skQ", // T3F3
				"7EZDyz67TxC0Y-XMASub7g", // T3F5
				"bAwBNuv7SAii8pdGRX2a3w", // T3F6
			},
			RoomPrefix: "DEN-2-",
		},
	}
}
