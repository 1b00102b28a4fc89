package config

import "os"

const EnvScamModelPath = "FINMITRA_SCAM_MODEL_PATH"

// ScamConfig holds scam classifier settings. An empty ModelPath means no
// statistical model is deployed and classification runs without that signal.
type ScamConfig struct {
	ModelPath string `toml:"model_path"`
}

// Finalize applies environment variable overrides. ModelPath has no default
// and no validation; absence is a supported state.
func (c *ScamConfig) Finalize() error {
	c.loadEnv()
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ScamConfig) Merge(overlay *ScamConfig) {
	if overlay.ModelPath != "" {
		c.ModelPath = overlay.ModelPath
	}
}

func (c *ScamConfig) loadEnv() {
	if v := os.Getenv(EnvScamModelPath); v != "" {
		c.ModelPath = v
	}
}
