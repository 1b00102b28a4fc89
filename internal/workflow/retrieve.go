package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/retrieval"
)

// RetrieveNode returns a state node that fans the current query out to the
// domain's retrieval sources and stores the ranked passages. Total source
// failure is a hard error; the caller decides how to apologize.
func RetrieveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w", err)
		}

		passages, err := rt.Retrieval.Retrieve(ctx, ts.Query, kindsForDomain(ts.Domain), rt.RetrieveLimit)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w: %w", ErrRetrievalUnavailable, err)
		}

		ts.Passages = passages

		rt.Logger.InfoContext(
			ctx, "retrieve node complete",
			"query", ts.Query,
			"passages", len(passages),
			"rewrites", ts.RewriteCount,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

// kindsForDomain selects retrieval sources per domain: scheme questions hit
// the knowledge graph plus the semantic index, concept questions hit the
// semantic index plus conversation memory.
func kindsForDomain(d intent.Domain) []retrieval.SourceKind {
	switch d {
	case intent.DomainSchemes:
		return []retrieval.SourceKind{retrieval.SourceGraph, retrieval.SourceSemantic}
	case intent.DomainConcept:
		return []retrieval.SourceKind{retrieval.SourceSemantic, retrieval.SourceMemory}
	default:
		return []retrieval.SourceKind{retrieval.SourceSemantic}
	}
}
