// Package turns orchestrates one conversation turn end to end: load
// context, run the workflow graph, persist what changed, and shape the
// response. It owns the boundary between transient workflow state and the
// externally persisted profile and history.
package turns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/internal/history"
	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/scams"
	"github.com/finmitra/finmitra/internal/workflow"
)

// recentWindow is how many prior turns feed the history summary.
const recentWindow = 6

// ErrEmptyMessage indicates the turn carried no usable text.
var ErrEmptyMessage = errors.New("message is empty")

// TurnRequest is one inbound user turn.
type TurnRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Metadata carries the degradation markers for a turn.
type Metadata struct {
	LowGrounding      bool `json:"low_grounding"`
	ReducedConfidence bool `json:"reduced_confidence"`
	RewriteCount      int  `json:"rewrite_count"`
}

// TurnResponse is the answered turn, including the profile snapshot the
// workflow ended with and whose profile the turn described.
type TurnResponse struct {
	Answer   string              `json:"answer"`
	Domain   intent.Domain       `json:"domain"`
	Language generation.Language `json:"language"`
	Profile  profile.Profile     `json:"profile"`
	Scope    profile.Scope       `json:"scope"`
	Verdict  *scams.FusedVerdict `json:"verdict,omitempty"`
	Metadata Metadata            `json:"metadata"`
}

// System is the public contract for turn handling.
type System interface {
	Handler() *Handler
	HandleTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error)
}

type system struct {
	runtime *workflow.Runtime
	store   history.Store
	logger  *slog.Logger
}

// New creates the turn system.
func New(runtime *workflow.Runtime, store history.Store, logger *slog.Logger) System {
	return &system{
		runtime: runtime,
		store:   store,
		logger:  logger.With("system", "turns"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// HandleTurn runs the full turn pipeline. Persistence failures around the
// workflow degrade the turn instead of failing it: a missing profile or
// history only costs context. Workflow failures surface as typed errors for
// the transport layer to translate.
func (s *system) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = "anonymous"
	}

	prior, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile load failed, proceeding without", "user_id", userID, "error", err)
		prior = profile.Profile{}
	}

	summary := "Conversation just started."
	recent, err := s.store.Recent(ctx, userID, recentWindow)
	if err != nil {
		s.logger.WarnContext(ctx, "history load failed, proceeding without", "user_id", userID, "error", err)
	} else {
		summary = history.Summarize(recent)
	}

	result, err := workflow.Execute(ctx, s.runtime, workflow.Turn{
		UserID:         userID,
		Utterance:      message,
		Language:       DetectLanguage(message),
		HistorySummary: summary,
		Profile:        prior,
	})
	if err != nil {
		return nil, fmt.Errorf("turn workflow: %w", err)
	}

	if result.Scope == profile.ScopeSelf && result.Profile.Len() > 0 {
		if err := s.store.SaveProfile(ctx, userID, result.Profile); err != nil {
			s.logger.WarnContext(ctx, "profile save failed", "user_id", userID, "error", err)
		}
	}

	record := history.TurnRecord{
		UserID:    userID,
		Question:  message,
		Answer:    result.Answer,
		Domain:    string(result.Domain),
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendTurn(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "history append failed", "user_id", userID, "error", err)
	}

	return &TurnResponse{
		Answer:   result.Answer,
		Domain:   result.Domain,
		Language: result.Language,
		Profile:  result.Profile,
		Scope:    result.Scope,
		Verdict:  result.Verdict,
		Metadata: Metadata{
			LowGrounding:      result.LowGrounding,
			ReducedConfidence: result.ReducedConfidence,
			RewriteCount:      result.RewriteCount,
		},
	}, nil
}
