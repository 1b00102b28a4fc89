package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Searcher is the collaborator contract each backend implements.
// Search must be idempotent and side-effect-free.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Passage, error)
}

// Gateway fans a retrieve call out to the registered backends and merges
// the results into one relevance-ranked sequence.
type Gateway struct {
	sources map[SourceKind]Searcher
	timeout time.Duration
	logger  *slog.Logger
}

// NewGateway creates a Gateway with no registered sources.
func NewGateway(timeout time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{
		sources: make(map[SourceKind]Searcher),
		timeout: timeout,
		logger:  logger.With("system", "retrieval"),
	}
}

// Register binds a backend to a source kind, replacing any prior binding.
func (g *Gateway) Register(kind SourceKind, s Searcher) {
	g.sources[kind] = s
}

// Retrieve fetches passages for the query from each requested source kind.
// Kind fetches run in parallel; a failed or unregistered kind degrades to an
// empty sub-sequence and is logged. Only when every requested kind fails does
// the call return ErrUnavailable. Results are ranked by score descending,
// ties broken by source priority (graph > semantic > memory); equal score and
// kind preserves backend order. The call is one-shot: it is not restartable.
func (g *Gateway) Retrieve(ctx context.Context, query string, kinds []SourceKind, limit int) ([]Passage, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: no source kinds requested", ErrUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results := make([][]Passage, len(kinds))
	failures := make([]bool, len(kinds))

	gr, gctx := errgroup.WithContext(callCtx)
	for i, kind := range kinds {
		gr.Go(func() error {
			source, ok := g.sources[kind]
			if !ok {
				g.logger.WarnContext(ctx, "source kind not registered", "kind", kind)
				failures[i] = true
				return nil
			}

			passages, err := source.Search(gctx, query, limit)
			if err != nil {
				g.logger.WarnContext(ctx, "source failed", "kind", kind, "error", err)
				failures[i] = true
				return nil
			}

			results[i] = passages
			return nil
		})
	}

	// Goroutines absorb their own failures, so Wait only surfaces
	// context cancellation.
	if err := gr.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	if failed == len(kinds) {
		return nil, ErrUnavailable
	}

	merged := rank(results)
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func rank(results [][]Passage) []Passage {
	var merged []Passage
	for _, r := range results {
		merged = append(merged, r...)
	}

	slices.SortStableFunc(merged, func(a, b Passage) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return sourcePriority[b.Source] - sourcePriority[a.Source]
	})

	return merged
}
