package workflow

import (
	"time"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/retrieval"
	"github.com/finmitra/finmitra/internal/scams"
)

// KeyTurn is the state bag key holding the TurnState.
const KeyTurn = "turn_state"

// TurnState is the single mutable value threaded through the graph. Nodes
// read it, derive new fields, and write it back; nothing else crosses node
// boundaries.
type TurnState struct {
	UserID         string
	Utterance      string
	Language       generation.Language
	HistorySummary string

	Domain  intent.Domain
	Profile profile.Profile
	Scope   profile.Scope

	Query        string
	Passages     []retrieval.Passage
	RewriteCount int

	Draft             string
	LowGrounding      bool
	ReducedConfidence bool
	LedgerAnswered    bool
	Verdict           *scams.FusedVerdict
}

// Result is the completed turn the workflow hands back to its caller.
type Result struct {
	Answer            string              `json:"answer"`
	Domain            intent.Domain       `json:"domain"`
	Profile           profile.Profile     `json:"profile"`
	Scope             profile.Scope       `json:"scope"`
	Language          generation.Language `json:"language"`
	Verdict           *scams.FusedVerdict `json:"verdict,omitempty"`
	LowGrounding      bool                `json:"low_grounding"`
	ReducedConfidence bool                `json:"reduced_confidence"`
	RewriteCount      int                 `json:"rewrite_count"`
	CompletedAt       time.Time           `json:"completed_at"`
}
