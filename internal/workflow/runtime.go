package workflow

import (
	"log/slog"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/ledger"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/retrieval"
	"github.com/finmitra/finmitra/internal/scams"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Intent     *intent.Classifier
	Extractor  *profile.Extractor
	Retrieval  *retrieval.Gateway
	Generation generation.Service
	Ledger     ledger.Ledger
	Scams      scams.System

	// MinRelevance is the retrieval score floor below which passages count
	// as weak grounding.
	MinRelevance float64
	// RewriteCap bounds the retrieve-evaluate-rewrite loop per turn.
	RewriteCap int
	// RetrieveLimit caps the merged passage count handed to generation.
	RetrieveLimit int

	Logger *slog.Logger
}
