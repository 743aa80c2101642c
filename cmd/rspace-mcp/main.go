// Command rspace-mcp serves the RSpace tool surface to MCP agent hosts over
// stdio or streamable HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rspace-os/rspace-mcp/pkg/config"
	"github.com/rspace-os/rspace-mcp/pkg/mcpserver"
	"github.com/rspace-os/rspace-mcp/pkg/rspace"
	"github.com/rspace-os/rspace-mcp/pkg/tools"
)

// Filled at build time with the -X linker flag.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to the YAML server config (optional)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "rspace-mcp:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return err
	}
	platform, err := config.LoadPlatform(ctx)
	if err != nil {
		return err
	}

	// stdout belongs to the stdio transport; all logging goes to stderr.
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	client, err := rspace.NewClient(rspace.Config{
		BaseURL: platform.URL,
		APIKey:  platform.APIKey,
		Timeout: platform.Timeout(),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	registry := tools.NewToolset(client).Registry()
	policy := tools.AllowAllPolicy()
	for _, group := range cfg.DisabledGroups {
		policy.DenyGroup(registry, group)
	}
	for _, name := range cfg.DisabledTools {
		policy.Deny(name)
	}
	executor := tools.NewExecutor(registry, policy, log)

	log.Info().
		Str("version", version).
		Str("rspace_url", platform.URL).
		Int("tools", len(executor.AllowedTools())).
		Msg("starting rspace-mcp")

	srv := mcpserver.New(executor, mcpserver.Options{
		Name:    cfg.Name,
		Version: versionOr(cfg.Version),
	}, log)

	if cfg.Transport == config.TransportHTTP {
		return srv.RunHTTP(ctx, cfg.Listen)
	}
	return srv.Run(ctx)
}

// versionOr prefers the build-time version over the config placeholder.
func versionOr(configured string) string {
	if version != "dev" {
		return version
	}
	if configured != "" {
		return configured
	}
	return version
}
