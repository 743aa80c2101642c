// Package config loads server configuration from an optional YAML file and
// platform credentials from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Transport names for the server config file.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Server is the YAML server configuration. Every field has a usable default
// so the file is optional.
type Server struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"` // stdio or http
	Listen    string `yaml:"listen"`    // http only
	LogLevel  string `yaml:"log_level"`

	// Tools and groups the deployment hides from agent hosts.
	DisabledTools  []string `yaml:"disabled_tools"`
	DisabledGroups []string `yaml:"disabled_groups"`
}

// Platform holds the RSpace connection settings, read from the environment.
type Platform struct {
	URL            string `env:"RSPACE_URL, required"`
	APIKey         string `env:"RSPACE_API_KEY, required"`
	TimeoutSeconds int    `env:"RSPACE_TIMEOUT_SECONDS, default=30"`
}

// Timeout returns the request timeout as a duration.
func (p Platform) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Default returns the server configuration used when no file is given.
func Default() Server {
	return Server{
		Name:      "rspace-mcp",
		Version:   "dev",
		Transport: TransportStdio,
		Listen:    "127.0.0.1:8823",
		LogLevel:  "info",
	}
}

// LoadServer reads the YAML server config. An empty path returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Server{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Server{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Server{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadPlatform reads the RSpace connection settings from the environment.
func LoadPlatform(ctx context.Context) (Platform, error) {
	var p Platform
	if err := envconfig.Process(ctx, &p); err != nil {
		return Platform{}, fmt.Errorf("reading environment: %w", err)
	}
	return p, nil
}

func (s Server) validate() error {
	switch s.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q, want %q or %q", s.Transport, TransportStdio, TransportHTTP)
	}
	if s.Transport == TransportHTTP && s.Listen == "" {
		return fmt.Errorf("http transport needs a listen address")
	}
	return nil
}
