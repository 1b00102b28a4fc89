package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// GenerateNode returns a state node that drafts the answer from the
// retrieved passages and the user profile. Generation failure is a hard
// error; weak grounding is not, it only hedges the draft.
func GenerateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("generate: %w", err)
		}

		prompt := composeAnswerPrompt(ts)

		draft, err := rt.Generation.Generate(ctx, prompt, ts.Language)
		if err != nil {
			return s, fmt.Errorf("generate: %w: %w", ErrGenerationUnavailable, err)
		}

		ts.Draft = strings.TrimSpace(draft)

		rt.Logger.InfoContext(
			ctx, "generate node complete",
			"domain", ts.Domain,
			"low_grounding", ts.LowGrounding,
			"draft_length", len(ts.Draft),
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func composeAnswerPrompt(ts *TurnState) string {
	var context strings.Builder
	if len(ts.Passages) == 0 {
		context.WriteString("(no reference passages found)\n")
	}
	for i, p := range ts.Passages {
		context.WriteString(fmt.Sprintf("[%d] (%s) %s\n", i+1, p.Source, p.Content))
	}

	grounding := groundedInstruction
	if ts.LowGrounding {
		grounding = hedgedInstruction
	}

	return fmt.Sprintf(answerPrompt,
		profileSummary(ts.Profile),
		ts.HistorySummary,
		context.String(),
		grounding,
		ts.Utterance,
	)
}
