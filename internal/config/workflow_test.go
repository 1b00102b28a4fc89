package config_test

import (
	"testing"
	"time"

	"github.com/finmitra/finmitra/internal/config"
)

func TestWorkflowConfigFinalizeDefaults(t *testing.T) {
	var cfg config.WorkflowConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.MinRelevance != 0.4 {
		t.Errorf("MinRelevance = %f, want 0.4", cfg.MinRelevance)
	}
	if cfg.RewriteCap != 2 {
		t.Errorf("RewriteCap = %d, want 2", cfg.RewriteCap)
	}
	if cfg.RetrieveLimit != 6 {
		t.Errorf("RetrieveLimit = %d, want 6", cfg.RetrieveLimit)
	}
	if cfg.CallTimeoutDuration() != 8*time.Second {
		t.Errorf("CallTimeout = %v, want 8s", cfg.CallTimeoutDuration())
	}
}

func TestWorkflowConfigFinalizeEnvOverride(t *testing.T) {
	t.Setenv(config.EnvWorkflowMinRelevance, "0.6")
	t.Setenv(config.EnvWorkflowRewriteCap, "1")

	var cfg config.WorkflowConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.MinRelevance != 0.6 {
		t.Errorf("MinRelevance = %f, want env override 0.6", cfg.MinRelevance)
	}
	if cfg.RewriteCap != 1 {
		t.Errorf("RewriteCap = %d, want env override 1", cfg.RewriteCap)
	}
}

func TestWorkflowConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.WorkflowConfig
	}{
		{"relevance above one", config.WorkflowConfig{MinRelevance: 1.5}},
		{"bad timeout", config.WorkflowConfig{CallTimeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWorkflowConfigMerge(t *testing.T) {
	cfg := config.WorkflowConfig{MinRelevance: 0.4, RewriteCap: 2, RetrieveLimit: 6, CallTimeout: "8s"}
	cfg.Merge(&config.WorkflowConfig{MinRelevance: 0.5, CallTimeout: "10s"})

	if cfg.MinRelevance != 0.5 || cfg.CallTimeout != "10s" {
		t.Errorf("overlay values not applied: %+v", cfg)
	}
	if cfg.RewriteCap != 2 || cfg.RetrieveLimit != 6 {
		t.Errorf("zero overlay fields should not clear base: %+v", cfg)
	}
}
