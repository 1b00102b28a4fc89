package ledger_test

import (
	"testing"
	"time"

	"github.com/finmitra/finmitra/internal/ledger"
)

var now = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

func TestParseStatementTransaction(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantAmount   float64
		wantCategory ledger.Category
		wantHasCat   bool
	}{
		{"auto ride", "Spent 200 on auto", 200, ledger.CategoryTransport, true},
		{"rupee symbol", "paid ₹1,250.50 for groceries", 1250.50, ledger.CategoryFood, true},
		{"rs prefix", "bought shoes for rs 999", 999, ledger.CategoryShopping, true},
		{"hinglish", "chai pe 20 kharcha", 20, ledger.CategoryFood, true},
		{"no category", "gave 500 to my cousin", 500, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ParseStatement(tt.text, now)

			if got.Kind != ledger.StatementTransaction {
				t.Fatalf("Kind = %s, want %s", got.Kind, ledger.StatementTransaction)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.HasCategory != tt.wantHasCat {
				t.Errorf("HasCategory = %v, want %v", got.HasCategory, tt.wantHasCat)
			}
			if tt.wantHasCat && got.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestParseStatementQueryBeforeSpendVerb(t *testing.T) {
	// Contains "spend" but asks for an aggregate, not a write.
	got := ledger.ParseStatement("How much did I spend today?", now)

	if got.Kind != ledger.StatementSpendQuery {
		t.Fatalf("Kind = %s, want %s", got.Kind, ledger.StatementSpendQuery)
	}

	wantFrom := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Range.From.Equal(wantFrom) {
		t.Errorf("Range.From = %v, want %v", got.Range.From, wantFrom)
	}
}

func TestParseStatementBudget(t *testing.T) {
	got := ledger.ParseStatement("set budget of 2000 for food", now)

	if got.Kind != ledger.StatementBudget {
		t.Fatalf("Kind = %s, want %s", got.Kind, ledger.StatementBudget)
	}
	if got.Amount != 2000 {
		t.Errorf("Amount = %v, want 2000", got.Amount)
	}
	if got.Category != ledger.CategoryFood || !got.HasCategory {
		t.Errorf("Category = %s (set=%v), want food", got.Category, got.HasCategory)
	}
}

func TestParseStatementBudgetQuery(t *testing.T) {
	got := ledger.ParseStatement("how much of my food budget is left?", now)

	if got.Kind != ledger.StatementBudgetQuery {
		t.Fatalf("Kind = %s, want %s", got.Kind, ledger.StatementBudgetQuery)
	}
	if got.Category != ledger.CategoryFood {
		t.Errorf("Category = %s, want food", got.Category)
	}
}

func TestParseStatementRanges(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantFrom time.Time
	}{
		{"today", "how much did i spend today", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "kitna kharcha yesterday", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"this month", "total spent this month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"default month to date", "show my spending summary", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ParseStatement(tt.text, now)
			if !got.Range.From.Equal(tt.wantFrom) {
				t.Errorf("Range.From = %v, want %v", got.Range.From, tt.wantFrom)
			}
		})
	}
}

func TestParseStatementUnknown(t *testing.T) {
	got := ledger.ParseStatement("money is tight these days", now)
	if got.Kind != ledger.StatementUnknown {
		t.Errorf("Kind = %s, want %s", got.Kind, ledger.StatementUnknown)
	}
}
