package turns

import (
	"errors"
	"fmt"
	"testing"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/workflow"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want generation.Language
	}{
		{"english", "How do I open a savings account?", generation.LanguageEnglish},
		{"devanagari", "मुझे पेंशन योजना के बारे में बताइए", generation.LanguageHindi},
		{"hinglish", "yojana ke liye documents kya chahiye?", generation.LanguageHinglish},
		{"single marker stays english", "the bill hai due", generation.LanguageEnglish},
		{"empty", "", generation.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestApologyForWorkflowErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"retrieval", workflow.ErrRetrievalUnavailable},
		{"generation", workflow.ErrGenerationUnavailable},
		{"ledger", workflow.ErrLedgerUnavailable},
		{"fusion", workflow.ErrFusionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("turn workflow: %w", tt.err)
			resp, ok := apologyFor(wrapped)
			if !ok {
				t.Fatal("expected an apology response")
			}
			if resp.Answer == "" {
				t.Error("apology answer should not be empty")
			}
			if resp.Domain != intent.DomainFallback {
				t.Errorf("Domain = %s, want fallback", resp.Domain)
			}
			if !resp.Metadata.ReducedConfidence {
				t.Error("degraded turn should mark reduced confidence")
			}
		})
	}
}

func TestApologyForUnknownError(t *testing.T) {
	if _, ok := apologyFor(errors.New("disk on fire")); ok {
		t.Error("unknown errors should not be masked with an apology")
	}
}
