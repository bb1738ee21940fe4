package platform

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/health"
	"github.com/txn2/mcp-zoom-rooms/pkg/toolkits/zoomrooms"
)

// Platform owns all mutable server state: the Zoom Rooms toolkit (and
// through it the token manager and hierarchy cache), the MCP server, and the
// lifecycle. It is constructed once at process start and torn down at exit;
// there are no ambient globals.
type Platform struct {
	config *Config

	mcpServer *mcp.Server
	toolkit   *zoomrooms.Toolkit
	lifecycle *Lifecycle
	health    *health.Checker
}

// Options configures the platform.
type Options struct {
	// Config is the platform configuration.
	Config *Config

	// Toolkit overrides toolkit construction; used by tests.
	Toolkit *zoomrooms.Toolkit
}

// Option is a functional option for configuring the platform.
type Option func(*Options)

// WithConfig sets the configuration.
func WithConfig(cfg *Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithToolkit sets a pre-built toolkit.
func WithToolkit(tk *zoomrooms.Toolkit) Option {
	return func(o *Options) {
		o.Toolkit = tk
	}
}

// New creates a new platform instance.
func New(opts ...Option) (*Platform, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := options.Config.Validate(); err != nil {
		return nil, err
	}

	p := &Platform{
		config:    options.Config,
		lifecycle: NewLifecycle(),
		health:    health.NewChecker(),
	}

	if err := p.initialize(options); err != nil {
		return nil, fmt.Errorf("initializing platform: %w", err)
	}
	return p, nil
}

// initialize builds the toolkit and MCP server and registers lifecycle hooks.
func (p *Platform) initialize(opts *Options) error {
	if opts.Toolkit != nil {
		p.toolkit = opts.Toolkit
	} else {
		tk, err := zoomrooms.New(p.config.Server.Name, p.config.Zoom)
		if err != nil {
			return fmt.Errorf("creating zoomrooms toolkit: %w", err)
		}
		p.toolkit = tk
	}

	p.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    p.config.Server.Name,
		Version: p.config.Server.Version,
	}, nil)
	p.toolkit.RegisterTools(p.mcpServer)

	p.lifecycle.OnStart(func(context.Context) error {
		p.health.SetReady()
		return nil
	})
	p.lifecycle.OnStop(func(context.Context) error {
		p.health.SetDraining()
		return p.toolkit.Close()
	})
	return nil
}

// Start runs the platform lifecycle.
func (p *Platform) Start(ctx context.Context) error {
	return p.lifecycle.Start(ctx)
}

// Close tears the platform down.
func (p *Platform) Close() error {
	return p.lifecycle.Stop(context.Background())
}

// MCPServer returns the MCP server with all tools registered.
func (p *Platform) MCPServer() *mcp.Server {
	return p.mcpServer
}

// Config returns the platform configuration.
func (p *Platform) Config() *Config {
	return p.config
}

// Toolkit returns the Zoom Rooms toolkit.
func (p *Platform) Toolkit() *zoomrooms.Toolkit {
	return p.toolkit
}

// Health returns the readiness checker.
func (p *Platform) Health() *health.Checker {
	return p.health
}
