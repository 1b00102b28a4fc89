// Package config loads the layered service configuration: TOML base file,
// environment overlay file, then environment variable overrides, finalized
// with defaults and validation.
package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/finmitra/finmitra/pkg/database"
	"github.com/finmitra/finmitra/pkg/graph"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvFinMitraEnv             = "FINMITRA_ENV"
	EnvFinMitraShutdownTimeout = "FINMITRA_SHUTDOWN_TIMEOUT"
	EnvFinMitraVersion         = "FINMITRA_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "FINMITRA_DB_HOST",
	Port:            "FINMITRA_DB_PORT",
	Name:            "FINMITRA_DB_NAME",
	User:            "FINMITRA_DB_USER",
	Password:        "FINMITRA_DB_PASSWORD",
	SSLMode:         "FINMITRA_DB_SSL_MODE",
	MaxOpenConns:    "FINMITRA_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "FINMITRA_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "FINMITRA_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "FINMITRA_DB_CONN_TIMEOUT",
}

var graphEnv = &graph.Env{
	URI:         "FINMITRA_GRAPH_URI",
	Username:    "FINMITRA_GRAPH_USERNAME",
	Password:    "FINMITRA_GRAPH_PASSWORD",
	Database:    "FINMITRA_GRAPH_DATABASE",
	ConnTimeout: "FINMITRA_GRAPH_CONN_TIMEOUT",
}

// Config is the root configuration for the FinMitra service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Graph           graph.Config         `toml:"graph"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	API             APIConfig            `toml:"api"`
	Workflow        WorkflowConfig       `toml:"workflow"`
	Scam            ScamConfig           `toml:"scam"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the FINMITRA_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvFinMitraEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Graph.Merge(&overlay.Graph)
	c.Agent.Merge(&overlay.Agent)
	c.API.Merge(&overlay.API)
	c.Workflow.Merge(&overlay.Workflow)
	c.Scam.Merge(&overlay.Scam)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Graph.Finalize(graphEnv); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := c.Scam.Finalize(); err != nil {
		return fmt.Errorf("scam: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFinMitraShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvFinMitraVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvFinMitraEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
