// Package workflow implements the per-turn state graph: extract profile
// facts, route to a domain, answer through the ledger, the scam classifier,
// or the retrieve-evaluate-rewrite loop, and draft the final response. One
// execution serves exactly one turn; the graph holds no cross-turn state.
package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/profile"
)

// Turn is one inbound utterance with its conversation context.
type Turn struct {
	UserID         string
	Utterance      string
	Language       generation.Language
	HistorySummary string
	Profile        profile.Profile
}

// Execute runs the turn workflow. It builds the state graph
// (extract → route → {ledger | scam | retrieve ⇄ rewrite | generate} → respond),
// executes it, and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, turn Turn) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyTurn, TurnState{
		UserID:         turn.UserID,
		Utterance:      turn.Utterance,
		Language:       turn.Language,
		HistorySummary: turn.HistorySummary,
		Profile:        turn.Profile,
	})

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("finmitra-turn")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := map[string]state.StateNode{
		"extract":  ExtractNode(rt),
		"route":    RouteNode(rt),
		"ledger":   LedgerNode(rt),
		"scam":     ScamNode(rt),
		"retrieve": RetrieveNode(rt),
		"evaluate": EvaluateNode(rt),
		"rewrite":  RewriteNode(rt),
		"generate": GenerateNode(rt),
		"respond":  RespondNode(rt),
	}
	for name, node := range nodes {
		if err := graph.AddNode(name, node); err != nil {
			return nil, err
		}
	}

	rewrite := needsRewrite(rt)

	edges := []struct {
		from, to  string
		condition func(state.State) bool
	}{
		{"extract", "route", nil},

		// route fans out to exactly one domain branch
		{"route", "ledger", domainIs(intent.DomainFinance)},
		{"route", "scam", domainIs(intent.DomainScam)},
		{"route", "retrieve", needsRetrieval},
		{"route", "generate", domainIs(intent.DomainFallback)},

		// ledger answers deterministically when it recognizes the statement
		{"ledger", "respond", ledgerAnswered},
		{"ledger", "generate", state.Not(ledgerAnswered)},

		{"scam", "respond", nil},

		// the bounded retrieve-evaluate-rewrite loop
		{"retrieve", "evaluate", nil},
		{"evaluate", "rewrite", rewrite},
		{"evaluate", "generate", state.Not(rewrite)},
		{"rewrite", "retrieve", nil},

		{"generate", "respond", nil},
	}
	for _, e := range edges {
		if err := graph.AddEdge(e.from, e.to, e.condition); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("respond"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	ts, err := extractTurn(s)
	if err != nil {
		return nil, err
	}

	return &Result{
		Answer:            ts.Draft,
		Domain:            ts.Domain,
		Profile:           ts.Profile,
		Scope:             ts.Scope,
		Language:          ts.Language,
		Verdict:           ts.Verdict,
		LowGrounding:      ts.LowGrounding,
		ReducedConfidence: ts.ReducedConfidence,
		RewriteCount:      ts.RewriteCount,
		CompletedAt:       time.Now(),
	}, nil
}
