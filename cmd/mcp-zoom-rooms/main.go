// Package main provides the entry point for the mcp-zoom-rooms server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "github.com/txn2/mcp-zoom-rooms/internal/server"
	"github.com/txn2/mcp-zoom-rooms/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serverOptions struct {
	configPath  string
	transport   string
	address     string
	showVersion bool
}

func parseFlags() serverOptions {
	opts := serverOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.transport, "transport", "", "Transport type: stdio, http")
	flag.StringVar(&opts.address, "address", "", "Server address for HTTP transport")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func run() error {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("mcp-zoom-rooms version %s\n", mcpserver.Version)
		return nil
	}

	// A .env file is optional; missing is not an error.
	_ = godotenv.Load()

	ctx := setupSignalHandler()

	var (
		mcpServer *mcp.Server
		p         *platform.Platform
		err       error
	)
	if opts.configPath != "" {
		mcpServer, p, err = mcpserver.NewWithConfig(opts.configPath)
	} else {
		mcpServer, p, err = mcpserver.NewFromEnv()
	}
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() { _ = p.Close() }()

	applyOverrides(p.Config(), &opts)
	setupLogging(p.Config().Logging)

	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("starting platform: %w", err)
	}

	switch opts.transport {
	case "stdio":
		return mcpServer.Run(ctx, &mcp.StdioTransport{})
	case "http":
		return serveHTTP(ctx, mcpServer, p, opts.address)
	default:
		return fmt.Errorf("unknown transport: %s", opts.transport)
	}
}

// applyOverrides resolves the effective transport and address: flags win
// over config, config wins over defaults.
func applyOverrides(cfg *platform.Config, opts *serverOptions) {
	if opts.transport == "" {
		opts.transport = cfg.Server.Transport
	}
	if opts.address == "" {
		opts.address = cfg.Server.Address
	}
}

// setupLogging configures the default slog logger. Output always goes to
// stderr so stdio transport framing on stdout stays clean.
func setupLogging(cfg platform.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func serveHTTP(ctx context.Context, mcpServer *mcp.Server, p *platform.Platform, address string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/healthz", p.Health().LivenessHandler())
	mux.HandleFunc("/readyz", p.Health().ReadinessHandler())

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
