// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, knowledge graph) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/finmitra/finmitra/internal/config"
	"github.com/finmitra/finmitra/pkg/database"
	"github.com/finmitra/finmitra/pkg/graph"
	"github.com/finmitra/finmitra/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, relational storage, and knowledge graph access.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Graph     graph.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	g, err := graph.New(&cfg.Graph, logger)
	if err != nil {
		return nil, fmt.Errorf("graph init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Graph:     g,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and graph hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Graph.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("graph start failed: %w", err)
	}
	return nil
}
