package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/finmitra/finmitra/internal/ledger"
	"github.com/finmitra/finmitra/internal/retrieval"
)

// LedgerNode returns a state node that handles finance-tracking turns
// deterministically. Recognized statements are answered straight from the
// ledger without a model call; unrecognized ones fall through to generation
// with the month-to-date spend attached as grounding.
func LedgerNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ts, err := extractTurn(s)
		if err != nil {
			return s, fmt.Errorf("ledger: %w", err)
		}

		now := time.Now()
		stmt := ledger.ParseStatement(ts.Utterance, now)

		switch stmt.Kind {
		case ledger.StatementTransaction:
			err = recordTransaction(ctx, rt, ts, stmt, now)
		case ledger.StatementBudget:
			err = recordBudget(ctx, rt, ts, stmt)
		case ledger.StatementSpendQuery:
			err = answerSpendQuery(ctx, rt, ts, stmt)
		case ledger.StatementBudgetQuery:
			err = answerBudgetQuery(ctx, rt, ts, stmt, now)
		default:
			attachSpendContext(ctx, rt, ts, now)
		}
		if err != nil {
			return s, fmt.Errorf("ledger: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "ledger node complete",
			"statement", stmt.Kind,
			"answered", ts.LedgerAnswered,
		)

		return s.Set(KeyTurn, *ts), nil
	})
}

func recordTransaction(ctx context.Context, rt *Runtime, ts *TurnState, stmt ledger.Statement, now time.Time) error {
	category := stmt.Category
	if !stmt.HasCategory {
		category = ledger.CategoryOther
	}

	tx := ledger.Transaction{
		ID:        uuid.New(),
		UserID:    ts.UserID,
		Amount:    stmt.Amount,
		Category:  category,
		Note:      stmt.Note,
		Currency:  "INR",
		Timestamp: now,
	}

	if err := rt.Ledger.AppendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	draft := fmt.Sprintf("Noted! Recorded %s on %s.", formatAmount(stmt.Amount), category)

	if warning := budgetWarning(ctx, rt, ts.UserID, category, now); warning != "" {
		draft += " " + warning
	}

	ts.Draft = draft
	ts.LedgerAnswered = true
	return nil
}

func recordBudget(ctx context.Context, rt *Runtime, ts *TurnState, stmt ledger.Statement) error {
	category := stmt.Category
	if !stmt.HasCategory {
		category = ledger.CategoryOther
	}

	b := ledger.Budget{
		UserID:   ts.UserID,
		Category: category,
		Limit:    stmt.Amount,
	}

	if err := rt.Ledger.SetBudget(ctx, b); err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	ts.Draft = fmt.Sprintf("Done, your monthly %s budget is now %s.", category, formatAmount(stmt.Amount))
	ts.LedgerAnswered = true
	return nil
}

func answerSpendQuery(ctx context.Context, rt *Runtime, ts *TurnState, stmt ledger.Statement) error {
	var category *ledger.Category
	if stmt.HasCategory {
		category = &stmt.Category
	}

	total, err := rt.Ledger.AggregateSpend(ctx, ts.UserID, stmt.Range, category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	subject := "in total"
	if stmt.HasCategory {
		subject = "on " + string(stmt.Category)
	}

	ts.Draft = fmt.Sprintf("You spent %s %s between %s and %s.",
		formatAmount(total), subject,
		stmt.Range.From.Format("2 Jan"), stmt.Range.To.Format("2 Jan"),
	)
	ts.LedgerAnswered = true
	return nil
}

func answerBudgetQuery(ctx context.Context, rt *Runtime, ts *TurnState, stmt ledger.Statement, now time.Time) error {
	category := stmt.Category
	if !stmt.HasCategory {
		category = ledger.CategoryOther
	}

	limit, err := rt.Ledger.GetBudget(ctx, ts.UserID, category)
	if errors.Is(err, ledger.ErrBudgetNotFound) {
		ts.Draft = fmt.Sprintf("You have not set a %s budget yet. Say something like 'set budget of 2000 for %s' to create one.", category, category)
		ts.LedgerAnswered = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	spent, err := rt.Ledger.AggregateSpend(ctx, ts.UserID, monthToDate(now), &category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	remaining := limit - spent
	if remaining < 0 {
		ts.Draft = fmt.Sprintf("Your %s budget is %s and you have already spent %s this month, %s over the limit.",
			category, formatAmount(limit), formatAmount(spent), formatAmount(-remaining))
	} else {
		ts.Draft = fmt.Sprintf("Your %s budget is %s. You have spent %s this month, so %s remains.",
			category, formatAmount(limit), formatAmount(spent), formatAmount(remaining))
	}
	ts.LedgerAnswered = true
	return nil
}

// attachSpendContext grounds unrecognized finance utterances with the
// month-to-date total so generation answers from real data. Failures here
// only cost context, never the turn.
func attachSpendContext(ctx context.Context, rt *Runtime, ts *TurnState, now time.Time) {
	total, err := rt.Ledger.AggregateSpend(ctx, ts.UserID, monthToDate(now), nil)
	if err != nil {
		rt.Logger.WarnContext(ctx, "spend context unavailable", "error", err)
		return
	}

	ts.Passages = append(ts.Passages, retrieval.Passage{
		Source:  retrieval.SourceMemory,
		Content: fmt.Sprintf("The user has spent %s in total so far this month.", formatAmount(total)),
		Score:   1,
		Origin:  "ledger",
	})
}

func budgetWarning(ctx context.Context, rt *Runtime, userID string, category ledger.Category, now time.Time) string {
	limit, err := rt.Ledger.GetBudget(ctx, userID, category)
	if err != nil {
		return ""
	}

	spent, err := rt.Ledger.AggregateSpend(ctx, userID, monthToDate(now), &category)
	if err != nil {
		return ""
	}

	if spent > limit {
		return fmt.Sprintf("Heads up: you are now %s over your %s budget of %s.",
			formatAmount(spent-limit), category, formatAmount(limit))
	}
	return ""
}

func monthToDate(now time.Time) ledger.DateRange {
	return ledger.DateRange{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		To:   now.Add(time.Second),
	}
}

func formatAmount(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

func ledgerAnswered(s state.State) bool {
	ts, err := extractTurn(s)
	if err != nil {
		return false
	}
	return ts.LedgerAnswered
}
