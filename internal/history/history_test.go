package history_test

import (
	"strings"
	"testing"

	"github.com/finmitra/finmitra/internal/history"
)

func TestSummarizeEmpty(t *testing.T) {
	got := history.Summarize(nil)
	if got != "Conversation just started." {
		t.Errorf("Summarize(nil) = %q", got)
	}
}

func TestSummarizeOrdersOldestFirst(t *testing.T) {
	// Records arrive newest first, the way Recent returns them.
	records := []history.TurnRecord{
		{Question: "And the documents?", Answer: "You need an Aadhaar card."},
		{Question: "What is PM-Kisan?", Answer: "It is an income support scheme."},
	}

	got := history.Summarize(records)

	first := strings.Index(got, "What is PM-Kisan?")
	second := strings.Index(got, "And the documents?")
	if first < 0 || second < 0 {
		t.Fatalf("summary missing turns: %q", got)
	}
	if first > second {
		t.Errorf("summary should be oldest first: %q", got)
	}
}
