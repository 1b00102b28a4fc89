package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/scams"
)

// ScamNode returns a state node that runs the fusion classifier over the
// suspicious message and renders the verdict into user-facing advice. The
// rendering is deterministic; no model call shapes the final wording.
func ScamNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("scam: %w", err)
		}

		verdict, err := rt.Scams.Classify(ctx, ts.Utterance, nil)
		if err != nil {
			return s, fmt.Errorf("scam: %w: %w", ErrFusionUnavailable, err)
		}

		ts.Verdict = verdict
		ts.ReducedConfidence = verdict.ReducedConfidence
		ts.Draft = renderVerdict(verdict)

		rt.Logger.InfoContext(
			ctx, "scam node complete",
			"label", verdict.Label,
			"confidence", verdict.Confidence,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

var verdictAdvice = map[scams.RiskLabel]string{
	scams.RiskCritical: "This message is almost certainly a scam. Do not reply, do not share any OTP or PIN, and do not click any link in it.",
	scams.RiskHigh:     "This message shows strong signs of a scam. Do not act on it, and verify directly with your bank through its official app or branch.",
	scams.RiskMedium:   "This message looks suspicious. Be careful: do not share personal details or make payments until you confirm the sender is genuine.",
	scams.RiskLow:      "This message does not show the usual signs of a scam. Still, never share OTPs or PINs with anyone who contacts you first.",
}

func renderVerdict(v *scams.FusedVerdict) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Risk level: %s.\n", v.Label))
	b.WriteString(verdictAdvice[v.Label])

	if len(v.Flags) > 0 {
		b.WriteString("\n\nWarning signs found: ")
		b.WriteString(strings.Join(v.Flags, ", "))
		b.WriteString(".")
	}

	if v.ReducedConfidence {
		b.WriteString("\n\nNote: some checks were unavailable, so this assessment is less certain than usual.")
	}

	return b.String()
}
