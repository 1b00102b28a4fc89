package workflow

import "errors"

// Workflow errors. Nodes wrap collaborator failures in these sentinels so
// callers can distinguish which stage degraded without parsing messages.
var (
	// ErrRetrievalUnavailable indicates every retrieval source failed.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrGenerationUnavailable indicates the generation provider failed.
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrLedgerUnavailable indicates the transaction store failed or timed out.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrFusionUnavailable indicates scam classification produced no signals.
	ErrFusionUnavailable = errors.New("scam classification unavailable")
	// ErrStateCorrupt indicates the state bag lost or mistyped the turn value.
	ErrStateCorrupt = errors.New("workflow state corrupt")
)
