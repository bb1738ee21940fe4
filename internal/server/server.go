// Package server provides factories for creating the MCP server.
package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-zoom-rooms/pkg/platform"
)

// Version is set at build time.
var Version = "dev"

// NewWithConfig creates an MCP server from a YAML configuration file.
func NewWithConfig(configPath string) (*mcp.Server, *platform.Platform, error) {
	cfg, err := platform.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	return newFromConfig(cfg)
}

// NewFromEnv creates an MCP server configured entirely from environment
// variables.
func NewFromEnv() (*mcp.Server, *platform.Platform, error) {
	return newFromConfig(platform.FromEnv())
}

func newFromConfig(cfg *platform.Config) (*mcp.Server, *platform.Platform, error) {
	if cfg.Server.Version == "" || cfg.Server.Version == "1.0.0" {
		cfg.Server.Version = Version
	}

	p, err := platform.New(platform.WithConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	return p.MCPServer(), p, nil
}
