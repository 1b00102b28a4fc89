package scams

import (
	"context"
	"log/slog"
	"sync"

	"github.com/finmitra/finmitra/internal/generation"
)

// System is the public contract for scam classification.
type System interface {
	Handler() *Handler
	Classify(ctx context.Context, text string, meta *SenderMeta) (*FusedVerdict, error)
}

type classifier struct {
	rules  *RuleEngine
	model  *Model
	gen    generation.Service
	logger *slog.Logger
}

// New creates the scam classification system. model may be nil (no
// statistical model deployed) and gen may be nil (no generation provider);
// classification proceeds with whatever sources remain.
func New(rules *RuleEngine, model *Model, gen generation.Service, logger *slog.Logger) System {
	return &classifier{
		rules:  rules,
		model:  model,
		gen:    gen,
		logger: logger.With("system", "scams"),
	}
}

func (c *classifier) Handler() *Handler {
	return NewHandler(c, c.logger)
}

// Classify runs the available signal sources in parallel and fuses their
// verdicts. A single source failing degrades the verdict to reduced
// confidence; only all sources failing yields ErrInsufficientSignals.
func (c *classifier) Classify(ctx context.Context, text string, meta *SenderMeta) (*FusedVerdict, error) {
	var (
		mu      sync.Mutex
		signals []SignalVerdict
		reduced bool
	)

	add := func(v SignalVerdict) {
		mu.Lock()
		defer mu.Unlock()
		signals = append(signals, v)
	}
	degrade := func() {
		mu.Lock()
		defer mu.Unlock()
		reduced = true
	}

	var wg sync.WaitGroup

	wg.Go(func() {
		add(c.rules.Evaluate(text, meta))
	})

	if c.model != nil {
		wg.Go(func() {
			add(c.model.Verdict(text))
		})
	} else {
		reduced = true
	}

	if c.gen != nil {
		wg.Go(func() {
			v, err := generativeVerdict(ctx, c.gen, text, meta)
			if err != nil {
				c.logger.WarnContext(ctx, "generative signal unavailable", "error", err)
				degrade()
				return
			}
			add(v)
		})
	} else {
		reduced = true
	}

	wg.Wait()

	if len(signals) == 0 {
		return nil, ErrInsufficientSignals
	}

	verdict := Fuse(signals, reduced)

	c.logger.InfoContext(ctx, "message classified",
		"label", verdict.Label,
		"confidence", verdict.Confidence,
		"signals", len(verdict.Signals),
		"reduced_confidence", verdict.ReducedConfidence,
	)
	return &verdict, nil
}
