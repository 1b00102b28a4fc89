package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// RespondNode returns the terminal state node. It verifies a draft exists
// and emits the turn summary log line; every branch of the graph funnels
// through here.
func RespondNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("respond: %w", err)
		}

		if ts.Draft == "" {
			return s, fmt.Errorf("respond: %w: empty draft", ErrStateCorrupt)
		}

		rt.Logger.InfoContext(
			ctx, "turn complete",
			"domain", ts.Domain,
			"language", ts.Language,
			"rewrites", ts.RewriteCount,
			"low_grounding", ts.LowGrounding,
			"reduced_confidence", ts.ReducedConfidence,
		)

		return s, nil
	})
}
