// Package platform wires configuration, lifecycle and the Zoom Rooms toolkit
// into an MCP server.
package platform

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/txn2/mcp-zoom-rooms/pkg/toolkits/zoomrooms"
)

// Config holds the complete server configuration.
type Config struct {
	Server  ServerConfig     `yaml:"server"`
	Logging LoggingConfig    `yaml:"logging"`
	Zoom    zoomrooms.Config `yaml:"zoom"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"` // "stdio", "http"
	Address   string `yaml:"address"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadConfig loads configuration from a file.
// The path is expected to come from command line arguments, controlled by the
// operator.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// FromEnv builds a configuration purely from environment variables, for
// running without a config file.
func FromEnv() *Config {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
		Zoom: zoomrooms.Config{
			AccountID:    os.Getenv("ZOOM_ACCOUNT_ID"),
			ClientID:     os.Getenv("ZOOM_CLIENT_ID"),
			ClientSecret: os.Getenv("ZOOM_CLIENT_SECRET"),
			BaseURL:      os.Getenv("ZOOM_API_BASE_URL"),
			TokenURL:     os.Getenv("ZOOM_TOKEN_URL"),
		},
	}
	applyDefaults(cfg)
	return cfg
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "mcp-zoom-rooms"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "stdio"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Zoom.AccountID == "" {
		errs = append(errs, "zoom.account_id is required (or ZOOM_ACCOUNT_ID)")
	}
	if c.Zoom.ClientID == "" {
		errs = append(errs, "zoom.client_id is required (or ZOOM_CLIENT_ID)")
	}
	if c.Zoom.ClientSecret == "" {
		errs = append(errs, "zoom.client_secret is required (or ZOOM_CLIENT_SECRET)")
	}
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		errs = append(errs, fmt.Sprintf("server.transport must be stdio or http, got %q", c.Server.Transport))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
