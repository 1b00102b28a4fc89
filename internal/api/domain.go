package api

import (
	"fmt"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/history"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/ledger"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/retrieval"
	"github.com/finmitra/finmitra/internal/scams"
	"github.com/finmitra/finmitra/internal/turns"
	"github.com/finmitra/finmitra/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	History history.Store
	Scams   scams.System
	Turns   turns.System
}

// NewDomain creates all domain systems from the API runtime. Construction
// order follows the dependency chain: stores and services first, then the
// workflow runtime, then the turn system on top.
func NewDomain(runtime *Runtime) (*Domain, error) {
	cfg := runtime.Config
	callTimeout := cfg.Workflow.CallTimeoutDuration()

	gen := generation.New(cfg.Agent, callTimeout, runtime.Logger)

	store := history.NewStore(runtime.Database, runtime.Pagination, runtime.Logger)

	gateway := retrieval.NewGateway(callTimeout, runtime.Logger)
	gateway.Register(retrieval.SourceGraph, retrieval.NewGraphStore(runtime.Graph, runtime.Logger))
	gateway.Register(retrieval.SourceSemantic, retrieval.NewSemanticStore(runtime.Database.Connection(), runtime.Logger))
	gateway.Register(retrieval.SourceMemory, retrieval.NewMemoryStore(runtime.Database.Connection(), runtime.Logger))

	rules, err := scams.NewRuleEngine()
	if err != nil {
		return nil, fmt.Errorf("rule engine: %w", err)
	}

	model, err := scams.LoadModel(cfg.Scam.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("scam model: %w", err)
	}

	scamSystem := scams.New(rules, model, gen, runtime.Logger)

	ledgerStore := ledger.NewStore(runtime.Graph, callTimeout, runtime.Logger)

	wf := &workflow.Runtime{
		Intent:        intent.NewClassifier(gen, runtime.Logger),
		Extractor:     profile.NewExtractor(),
		Retrieval:     gateway,
		Generation:    gen,
		Ledger:        ledgerStore,
		Scams:         scamSystem,
		MinRelevance:  cfg.Workflow.MinRelevance,
		RewriteCap:    cfg.Workflow.RewriteCap,
		RetrieveLimit: cfg.Workflow.RetrieveLimit,
		Logger:        runtime.Logger,
	}

	return &Domain{
		History: store,
		Scams:   scamSystem,
		Turns:   turns.New(wf, store, runtime.Logger),
	}, nil
}
