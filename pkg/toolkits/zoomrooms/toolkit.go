// Package zoomrooms provides the Zoom Rooms toolkit: MCP tools for
// discovering sites, resolving location queries, and listing room status.
package zoomrooms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/hierarchy"
	"github.com/txn2/mcp-zoom-rooms/pkg/resolve"
	"github.com/txn2/mcp-zoom-rooms/pkg/rooms"
	"github.com/txn2/mcp-zoom-rooms/pkg/zoomapi"
)

// eventsPageSize bounds the recent-events fetch on the room details tool.
const eventsPageSize = 10

// Config holds Zoom Rooms toolkit configuration.
type Config struct {
	AccountID     string `yaml:"account_id"`
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	BaseURL       string `yaml:"base_url"`
	TokenURL      string `yaml:"token_url"`
	TokenCacheDir string `yaml:"token_cache_dir"`

	HierarchyTTL     time.Duration `yaml:"hierarchy_ttl"`
	LocationPageSize int           `yaml:"location_page_size"`
	RoomPageSize     int           `yaml:"room_page_size"`
	Concurrency      int           `yaml:"concurrency"`

	// DenverAliases overrides the built-in hardcoded building table.
	DenverAliases []resolve.DenverAlias `yaml:"denver_aliases"`

	ConnectionName string `yaml:"connection_name"`
}

// Toolkit wires the Zoom client, hierarchy discovery, resolution engine and
// room aggregator behind MCP tools.
type Toolkit struct {
	name   string
	config Config

	client     *zoomapi.Client
	hierarchy  *hierarchy.Service
	resolver   *resolve.Resolver
	aggregator *rooms.Aggregator
}

// New creates a Zoom Rooms toolkit.
func New(name string, cfg Config) (*Toolkit, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = applyDefaults(name, cfg)

	tokens, err := zoomapi.NewTokenManager(zoomapi.TokenManagerConfig{
		AccountID:  cfg.AccountID,
		AuthHeader: zoomapi.BasicAuthHeader(cfg.ClientID, cfg.ClientSecret),
		TokenURL:   cfg.TokenURL,
		Store:      zoomapi.NewFileTokenStore(cfg.TokenCacheDir),
	})
	if err != nil {
		return nil, fmt.Errorf("creating token manager: %w", err)
	}

	client, err := zoomapi.NewClient(zoomapi.ClientConfig{BaseURL: cfg.BaseURL}, tokens)
	if err != nil {
		return nil, fmt.Errorf("creating zoom client: %w", err)
	}

	hierarchySvc := hierarchy.New(client, hierarchy.Config{
		TTL:      cfg.HierarchyTTL,
		PageSize: cfg.LocationPageSize,
	})

	return &Toolkit{
		name:      name,
		config:    cfg,
		client:    client,
		hierarchy: hierarchySvc,
		resolver:  resolve.New(hierarchySvc, cfg.DenverAliases),
		aggregator: rooms.New(client, rooms.Config{
			PageSize:    cfg.RoomPageSize,
			Concurrency: cfg.Concurrency,
		}),
	}, nil
}

// validateConfig validates the required configuration fields.
func validateConfig(cfg Config) error {
	if cfg.AccountID == "" {
		return fmt.Errorf("zoom account_id is required")
	}
	if cfg.ClientID == "" {
		return fmt.Errorf("zoom client_id is required")
	}
	if cfg.ClientSecret == "" {
		return fmt.Errorf("zoom client_secret is required")
	}
	return nil
}

// applyDefaults applies default values to the configuration.
func applyDefaults(name string, cfg Config) Config {
	if cfg.ConnectionName == "" {
		cfg.ConnectionName = name
	}
	return cfg
}

// Kind returns the toolkit kind.
func (*Toolkit) Kind() string {
	return "zoomrooms"
}

// Name returns the toolkit instance name.
func (t *Toolkit) Name() string {
	return t.name
}

// Connection returns the connection name for logging.
func (t *Toolkit) Connection() string {
	return t.config.ConnectionName
}

// RegisterTools registers all Zoom Rooms tools with the MCP server.
func (t *Toolkit) RegisterTools(s *mcp.Server) {
	t.registerSitesTool(s)
	t.registerRoomsTool(s)
	t.registerRoomDetailsTool(s)
	t.registerResolveTool(s)
	t.registerConnectionTool(s)
}

// Tools returns the list of tool names provided by this toolkit.
func (*Toolkit) Tools() []string {
	return []string{
		"zoom_list_sites",
		"zoom_list_rooms",
		"zoom_room_details",
		"zoom_resolve_location",
		"zoom_test_connection",
	}
}

// Close releases resources.
func (*Toolkit) Close() error {
	return nil
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encoding result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

// errorResult reports a tool failure. MCP protocol: tool errors are returned
// in CallToolResult.IsError, not as Go errors.
func errorResult(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Verify interface compliance.
var _ interface {
	Kind() string
	Name() string
	Connection() string
	RegisterTools(s *mcp.Server)
	Tools() []string
	Close() error
} = (*Toolkit)(nil)
