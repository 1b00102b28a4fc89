package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvWorkflowMinRelevance  = "FINMITRA_WORKFLOW_MIN_RELEVANCE"
	EnvWorkflowRewriteCap    = "FINMITRA_WORKFLOW_REWRITE_CAP"
	EnvWorkflowRetrieveLimit = "FINMITRA_WORKFLOW_RETRIEVE_LIMIT"
	EnvWorkflowCallTimeout   = "FINMITRA_WORKFLOW_CALL_TIMEOUT"
)

// WorkflowConfig tunes the turn workflow: grading threshold, rewrite budget,
// passage limit, and the per-call timeout for external collaborators.
type WorkflowConfig struct {
	MinRelevance  float64 `toml:"min_relevance"`
	RewriteCap    int     `toml:"rewrite_cap"`
	RetrieveLimit int     `toml:"retrieve_limit"`
	CallTimeout   string  `toml:"call_timeout"`
}

// CallTimeoutDuration returns CallTimeout as a time.Duration.
func (c *WorkflowConfig) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.MinRelevance != 0 {
		c.MinRelevance = overlay.MinRelevance
	}
	if overlay.RewriteCap != 0 {
		c.RewriteCap = overlay.RewriteCap
	}
	if overlay.RetrieveLimit != 0 {
		c.RetrieveLimit = overlay.RetrieveLimit
	}
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.MinRelevance == 0 {
		c.MinRelevance = 0.4
	}
	if c.RewriteCap == 0 {
		c.RewriteCap = 2
	}
	if c.RetrieveLimit == 0 {
		c.RetrieveLimit = 6
	}
	if c.CallTimeout == "" {
		c.CallTimeout = "8s"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowMinRelevance); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinRelevance = f
		}
	}
	if v := os.Getenv(EnvWorkflowRewriteCap); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RewriteCap = n
		}
	}
	if v := os.Getenv(EnvWorkflowRetrieveLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RetrieveLimit = n
		}
	}
	if v := os.Getenv(EnvWorkflowCallTimeout); v != "" {
		c.CallTimeout = v
	}
}

func (c *WorkflowConfig) validate() error {
	if c.MinRelevance <= 0 || c.MinRelevance > 1 {
		return fmt.Errorf("min_relevance must be in (0, 1]: %f", c.MinRelevance)
	}
	if c.RewriteCap < 0 {
		return fmt.Errorf("rewrite_cap cannot be negative: %d", c.RewriteCap)
	}
	if c.RetrieveLimit < 1 {
		return fmt.Errorf("retrieve_limit must be positive: %d", c.RetrieveLimit)
	}
	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	return nil
}
