package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type agentService struct {
	cfg     gaconfig.AgentConfig
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Service backed by a go-agents chat agent. Each call
// constructs its own agent so concurrent turns never share provider state.
func New(cfg gaconfig.AgentConfig, timeout time.Duration, logger *slog.Logger) Service {
	return &agentService{
		cfg:     cfg,
		timeout: timeout,
		logger:  logger.With("system", "generation"),
	}
}

func (s *agentService) Generate(ctx context.Context, prompt string, language Language) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	a, err := agent.New(&s.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrUnavailable, err)
	}

	resp, err := a.Chat(callCtx, withLanguage(prompt, language))
	if err != nil {
		s.logger.WarnContext(ctx, "generation call failed", "error", err)
		return "", fmt.Errorf("%w: chat call: %w", ErrUnavailable, err)
	}

	return resp.Content(), nil
}

func withLanguage(prompt string, language Language) string {
	switch language {
	case LanguageHindi:
		return prompt + "\n\nRespond in Hindi (Devanagari script)."
	case LanguageHinglish:
		return prompt + "\n\nRespond in Hinglish (Hindi written in Latin script, everyday vocabulary)."
	default:
		return prompt + "\n\nRespond in English."
	}
}
