package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/intent"
)

// RouteNode returns a state node that assigns exactly one domain to the
// turn and seeds the retrieval query from the raw utterance. Routing never
// fails; undecidable inputs land in the fallback domain.
func RouteNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("route: %w", err)
		}

		ts.Domain = rt.Intent.Classify(ctx, ts.Utterance, ts.HistorySummary)
		ts.Query = ts.Utterance

		rt.Logger.InfoContext(
			ctx, "route node complete",
			"domain", ts.Domain,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func domainIs(d intent.Domain) func(state.State) bool {
	return func(s state.State) bool {
		ts, err := extractTurn(s)
		if err != nil {
			return false
		}
		return ts.Domain == d
	}
}

func needsRetrieval(s state.State) bool {
	ts, err := extractTurn(s)
	if err != nil {
		return false
	}
	return ts.Domain == intent.DomainSchemes || ts.Domain == intent.DomainConcept
}
