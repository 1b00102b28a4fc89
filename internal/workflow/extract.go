package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/profile"
)

// ExtractNode returns a state node that pulls profile facts out of the
// utterance and merges them into the working profile. Third-party facts
// leave the stored profile untouched.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		ex := rt.Extractor.Extract(ts.Utterance, ts.Profile)
		ts.Scope = ex.Scope
		ts.Profile = profile.Merge(ts.Profile, ex.Facts, ex.Scope)

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"scope", ts.Scope,
			"facts", ex.Facts.Len(),
			"profile_size", ts.Profile.Len(),
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func extractTurn(s state.State) (*TurnState, error) {
	val, ok := s.Get(KeyTurn)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrStateCorrupt, KeyTurn)
	}

	ts, ok := val.(TurnState)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not TurnState", ErrStateCorrupt, KeyTurn)
	}

	return &ts, nil
}
