package graph_test

import (
	"testing"
	"time"

	"github.com/finmitra/finmitra/pkg/graph"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := graph.Config{Username: "neo4j"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.URI != "neo4j://localhost:7687" {
		t.Errorf("URI = %q, want default", cfg.URI)
	}
	if cfg.Database != "neo4j" {
		t.Errorf("Database = %q, want neo4j", cfg.Database)
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("ConnTimeout = %v, want 5s", cfg.ConnTimeoutDuration())
	}
}

func TestConfigFinalizeEnvOverride(t *testing.T) {
	t.Setenv("TEST_GRAPH_URI", "neo4j://db.internal:7687")
	t.Setenv("TEST_GRAPH_PASSWORD", "secret")

	cfg := graph.Config{Username: "neo4j"}
	err := cfg.Finalize(&graph.Env{
		URI:      "TEST_GRAPH_URI",
		Password: "TEST_GRAPH_PASSWORD",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.URI != "neo4j://db.internal:7687" {
		t.Errorf("URI = %q, want env override", cfg.URI)
	}
	if cfg.Password != "secret" {
		t.Errorf("Password = %q, want env override", cfg.Password)
	}
}

func TestConfigFinalizeRequiresUsername(t *testing.T) {
	var cfg graph.Config
	if err := cfg.Finalize(nil); err == nil {
		t.Error("missing username should fail validation")
	}
}

func TestConfigFinalizeInvalidTimeout(t *testing.T) {
	cfg := graph.Config{Username: "neo4j", ConnTimeout: "not-a-duration"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("invalid conn_timeout should fail validation")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := graph.Config{URI: "neo4j://localhost:7687", Username: "neo4j", Database: "neo4j"}
	cfg.Merge(&graph.Config{URI: "neo4j://staging:7687", Password: "pw"})

	if cfg.URI != "neo4j://staging:7687" {
		t.Errorf("URI = %q, want overlay value", cfg.URI)
	}
	if cfg.Password != "pw" {
		t.Errorf("Password = %q, want overlay value", cfg.Password)
	}
	if cfg.Username != "neo4j" {
		t.Errorf("Username = %q, overlay zero value should not clear it", cfg.Username)
	}
}
