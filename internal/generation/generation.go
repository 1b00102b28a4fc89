// Package generation wraps the text-generation provider behind a uniform
// gateway. Output is deterministic: the agent runs at temperature zero so
// identical prompts yield identical answers, which keeps every consumer
// (routing, rewriting, answering, scam judgment) testable.
package generation

import (
	"context"
	"errors"
)

// Language tags the language an answer should be produced in.
type Language string

// Supported answer languages.
const (
	LanguageEnglish  Language = "english"
	LanguageHindi    Language = "hindi"
	LanguageHinglish Language = "hinglish"
)

// ErrUnavailable indicates the generation call failed or timed out.
var ErrUnavailable = errors.New("generation unavailable")

// Service is the generation gateway contract. Generate blocks until the
// provider responds, the per-call timeout elapses, or ctx is cancelled.
type Service interface {
	Generate(ctx context.Context, prompt string, language Language) (string, error)
}
