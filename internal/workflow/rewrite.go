package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/profile"
)

// RewriteNode returns a state node that reformulates the retrieval query
// after a weak pass. The model rewrite is best-effort; when it fails the
// node broadens the query deterministically from profile facts so the loop
// always makes progress.
func RewriteNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("rewrite: %w", err)
		}

		ts.RewriteCount++

		rewritten := rt.modelRewrite(ctx, ts)
		if rewritten == "" || rewritten == ts.Query {
			rewritten = broadenQuery(ts.Query, ts.Profile)
		}
		ts.Query = rewritten

		rt.Logger.InfoContext(
			ctx, "rewrite node complete",
			"query", ts.Query,
			"rewrites", ts.RewriteCount,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func (rt *Runtime) modelRewrite(ctx context.Context, ts *TurnState) string {
	if rt.Generation == nil {
		return ""
	}

	prompt := fmt.Sprintf(rewritePrompt, ts.Query, profileSummary(ts.Profile))
	resp, err := rt.Generation.Generate(ctx, prompt, generation.LanguageEnglish)
	if err != nil {
		rt.Logger.WarnContext(ctx, "model rewrite unavailable", "error", err)
		return ""
	}

	rewritten := strings.TrimSpace(strings.Trim(strings.TrimSpace(resp), `"`))
	if rewritten == "" || strings.ContainsRune(rewritten, '\n') {
		return ""
	}
	return rewritten
}

// broadenQuery appends known profile facts as search terms. Repeated calls
// keep the query stable once every fact is attached, so the rewrite loop
// cannot oscillate.
func broadenQuery(query string, p profile.Profile) string {
	broadened := query
	for _, attr := range []string{profile.AttrState, profile.AttrOccupation, profile.AttrAge} {
		if v, ok := p.Get(attr); ok && !strings.Contains(strings.ToLower(broadened), strings.ToLower(v)) {
			broadened += " " + v
		}
	}
	return broadened
}

func profileSummary(p profile.Profile) string {
	if p.Len() == 0 {
		return "nothing known yet"
	}

	var parts []string
	for _, attr := range []string{
		profile.AttrAge, profile.AttrState, profile.AttrOccupation,
		profile.AttrMonthlyIncome, profile.AttrRiskTolerance,
	} {
		if v, ok := p.Get(attr); ok {
			parts = append(parts, strings.ReplaceAll(attr, "_", " ")+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}
