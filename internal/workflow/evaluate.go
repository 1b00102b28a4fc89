package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/retrieval"
)

// EvaluateNode returns a state node that grades retrieval quality. The
// grade is a pure threshold check over passage scores; no model call is
// involved, so grading is deterministic and free.
func EvaluateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		ts.LowGrounding = !wellGrounded(ts.Passages, rt.MinRelevance)

		rt.Logger.InfoContext(
			ctx, "evaluate node complete",
			"low_grounding", ts.LowGrounding,
			"rewrites", ts.RewriteCount,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func wellGrounded(passages []retrieval.Passage, minRelevance float64) bool {
	for _, p := range passages {
		if p.Score >= minRelevance {
			return true
		}
	}
	return false
}

// needsRewrite gates the evaluate-to-rewrite edge: only weakly grounded
// turns that still have rewrite budget loop back.
func needsRewrite(rt *Runtime) func(state.State) bool {
	return func(s state.State) bool {
		ts, err := extractTurn(s)
		if err != nil {
			return false
		}
		return ts.LowGrounding && ts.RewriteCount < rt.RewriteCap
	}
}
