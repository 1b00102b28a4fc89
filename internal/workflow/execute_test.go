package workflow

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/ledger"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/retrieval"
)

type fakeGen struct {
	content string
	calls   atomic.Int32
}

func (f *fakeGen) Generate(ctx context.Context, prompt string, language generation.Language) (string, error) {
	f.calls.Add(1)
	return f.content, nil
}

type emptySearcher struct {
	calls atomic.Int32
}

func (f *emptySearcher) Search(ctx context.Context, query string, limit int) ([]retrieval.Passage, error) {
	f.calls.Add(1)
	return nil, nil
}

type recordingLedger struct {
	tx ledger.Transaction
}

func (l *recordingLedger) AppendTransaction(ctx context.Context, tx ledger.Transaction) error {
	l.tx = tx
	return nil
}

func (l *recordingLedger) SetBudget(ctx context.Context, b ledger.Budget) error {
	return nil
}

func (l *recordingLedger) GetBudget(ctx context.Context, userID string, category ledger.Category) (float64, error) {
	return 0, ledger.ErrBudgetNotFound
}

func (l *recordingLedger) AggregateSpend(ctx context.Context, userID string, r ledger.DateRange, category *ledger.Category) (float64, error) {
	return 0, nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testRuntime(gen *fakeGen, led ledger.Ledger, gateway *retrieval.Gateway) *Runtime {
	return &Runtime{
		Intent:        intent.NewClassifier(gen, discard()),
		Extractor:     profile.NewExtractor(),
		Retrieval:     gateway,
		Generation:    gen,
		Ledger:        led,
		MinRelevance:  0.4,
		RewriteCap:    2,
		RetrieveLimit: 6,
		Logger:        discard(),
	}
}

func TestExecuteFinanceTurnAnswersFromLedger(t *testing.T) {
	gen := &fakeGen{content: "unused"}
	led := &recordingLedger{}
	rt := testRuntime(gen, led, retrieval.NewGateway(time.Second, discard()))

	result, err := Execute(context.Background(), rt, Turn{
		UserID:    "u-1",
		Utterance: "Spent 200 on auto",
		Language:  generation.LanguageEnglish,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Domain != intent.DomainFinance {
		t.Errorf("Domain = %s, want finance-tracking", result.Domain)
	}
	if led.tx.Amount != 200 || led.tx.Category != ledger.CategoryTransport {
		t.Errorf("recorded tx = %+v, want amount 200, category transport", led.tx)
	}
	if led.tx.ID == uuid.Nil {
		t.Error("recorded transaction should carry a generated id")
	}
	if !strings.Contains(result.Answer, "₹200") {
		t.Errorf("answer should confirm the amount: %q", result.Answer)
	}
	if gen.calls.Load() != 0 {
		t.Errorf("ledger-answered turn made %d generation calls, want 0", gen.calls.Load())
	}
}

func TestExecuteRewriteLoopTerminatesOnEmptyRetrieval(t *testing.T) {
	gen := &fakeGen{content: "Here is a best-effort answer."}
	semantic := &emptySearcher{}
	memory := &emptySearcher{}

	gateway := retrieval.NewGateway(time.Second, discard())
	gateway.Register(retrieval.SourceSemantic, semantic)
	gateway.Register(retrieval.SourceMemory, memory)

	rt := testRuntime(gen, &recordingLedger{}, gateway)

	result, err := Execute(context.Background(), rt, Turn{
		UserID:    "u-1",
		Utterance: "FD kya hai?",
		Language:  generation.LanguageHinglish,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Domain != intent.DomainConcept {
		t.Errorf("Domain = %s, want concept-explanation", result.Domain)
	}
	if result.RewriteCount != 2 {
		t.Errorf("RewriteCount = %d, want the full budget of 2", result.RewriteCount)
	}
	if !result.LowGrounding {
		t.Error("empty retrieval should mark low grounding")
	}
	if result.Answer == "" {
		t.Error("turn should still produce a hedged answer")
	}
	// Initial retrieval plus one per rewrite.
	if semantic.calls.Load() != 3 {
		t.Errorf("semantic searches = %d, want 3", semantic.calls.Load())
	}
}
