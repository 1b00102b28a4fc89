package retrieval_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/finmitra/finmitra/internal/retrieval"
)

type fakeSearcher struct {
	passages []retrieval.Passage
	err      error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]retrieval.Passage, error) {
	return f.passages, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newGateway() *retrieval.Gateway {
	return retrieval.NewGateway(time.Second, discard())
}

func allKinds() []retrieval.SourceKind {
	return []retrieval.SourceKind{
		retrieval.SourceGraph,
		retrieval.SourceSemantic,
		retrieval.SourceMemory,
	}
}

func TestRetrieveMergesByScore(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceGraph, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceGraph, Content: "scheme summary", Score: 0.9},
	}})
	g.Register(retrieval.SourceSemantic, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceSemantic, Content: "guideline text", Score: 0.95},
		{Source: retrieval.SourceSemantic, Content: "weaker text", Score: 0.3},
	}})

	got, err := g.Retrieve(context.Background(), "housing scheme", allKinds()[:2], 10)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	want := []retrieval.Passage{
		{Source: retrieval.SourceSemantic, Content: "guideline text", Score: 0.95},
		{Source: retrieval.SourceGraph, Content: "scheme summary", Score: 0.9},
		{Source: retrieval.SourceSemantic, Content: "weaker text", Score: 0.3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged passages mismatch (-want +got):\n%s", diff)
	}
}

func TestRetrieveTieBreaksBySourcePriority(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceMemory, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceMemory, Content: "old turn", Score: 0.5},
	}})
	g.Register(retrieval.SourceGraph, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceGraph, Content: "scheme node", Score: 0.5},
	}})

	got, err := g.Retrieve(context.Background(), "q",
		[]retrieval.SourceKind{retrieval.SourceMemory, retrieval.SourceGraph}, 10)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if got[0].Source != retrieval.SourceGraph {
		t.Errorf("first passage source = %s, want %s", got[0].Source, retrieval.SourceGraph)
	}
}

func TestRetrieveAppliesLimit(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceSemantic, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceSemantic, Content: "a", Score: 0.9},
		{Source: retrieval.SourceSemantic, Content: "b", Score: 0.8},
		{Source: retrieval.SourceSemantic, Content: "c", Score: 0.7},
	}})

	got, err := g.Retrieve(context.Background(), "q",
		[]retrieval.SourceKind{retrieval.SourceSemantic}, 2)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestRetrievePartialFailureDegrades(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceGraph, &fakeSearcher{err: errors.New("connection reset")})
	g.Register(retrieval.SourceSemantic, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceSemantic, Content: "still here", Score: 0.6},
	}})

	got, err := g.Retrieve(context.Background(), "q", allKinds()[:2], 10)
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}
	if len(got) != 1 || got[0].Content != "still here" {
		t.Errorf("got %+v, want the surviving passage", got)
	}
}

func TestRetrieveTotalFailure(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceGraph, &fakeSearcher{err: errors.New("down")})
	g.Register(retrieval.SourceSemantic, &fakeSearcher{err: errors.New("down")})

	_, err := g.Retrieve(context.Background(), "q", allKinds()[:2], 10)
	if !errors.Is(err, retrieval.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestRetrieveUnregisteredKindCountsAsFailure(t *testing.T) {
	g := newGateway()
	g.Register(retrieval.SourceSemantic, &fakeSearcher{passages: []retrieval.Passage{
		{Source: retrieval.SourceSemantic, Content: "x", Score: 0.5},
	}})

	// Memory is not registered; the call still succeeds on semantic alone.
	got, err := g.Retrieve(context.Background(), "q",
		[]retrieval.SourceKind{retrieval.SourceSemantic, retrieval.SourceMemory}, 10)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}

	// Every requested kind unregistered is a total failure.
	_, err = g.Retrieve(context.Background(), "q",
		[]retrieval.SourceKind{retrieval.SourceGraph}, 10)
	if !errors.Is(err, retrieval.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestRetrieveNoKinds(t *testing.T) {
	g := newGateway()
	_, err := g.Retrieve(context.Background(), "q", nil, 10)
	if !errors.Is(err, retrieval.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
