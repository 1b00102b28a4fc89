// Package graph provides Neo4j driver management with lifecycle coordination.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finmitra/finmitra/pkg/lifecycle"
)

// System manages the Neo4j driver and lifecycle coordination.
type System interface {
	// Driver returns the underlying Neo4j driver.
	Driver() neo4j.DriverWithContext
	// Database returns the configured database name.
	Database() string
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type graph struct {
	driver      neo4j.DriverWithContext
	database    string
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a graph system with the given configuration.
// The driver is constructed eagerly but connectivity is only verified on Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	return &graph{
		driver:      driver,
		database:    cfg.Database,
		logger:      logger.With("system", "graph"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (g *graph) Driver() neo4j.DriverWithContext {
	return g.driver
}

func (g *graph) Database() string {
	return g.database
}

func (g *graph) Start(lc *lifecycle.Coordinator) error {
	g.logger.Info("starting graph connection")

	lc.OnStartup(func() {
		verifyCtx, cancel := context.WithTimeout(lc.Context(), g.connTimeout)
		defer cancel()

		if err := g.driver.VerifyConnectivity(verifyCtx); err != nil {
			g.logger.Error("graph connectivity check failed", "error", err)
			return
		}

		g.logger.Info("graph connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		g.logger.Info("closing graph connection")

		closeCtx, cancel := context.WithTimeout(context.Background(), g.connTimeout)
		defer cancel()

		if err := g.driver.Close(closeCtx); err != nil {
			g.logger.Error("graph close failed", "error", err)
			return
		}

		g.logger.Info("graph connection closed")
	})

	return nil
}
