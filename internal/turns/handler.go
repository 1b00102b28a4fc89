package turns

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/workflow"
	"github.com/finmitra/finmitra/pkg/handlers"
	"github.com/finmitra/finmitra/pkg/routes"
)

// Handler provides the HTTP endpoint for conversation turns.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "turns"),
	}
}

// Routes returns the route group definition for turn endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/turns",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Post},
		},
	}
}

// Post answers one conversation turn. Collaborator outages never surface as
// raw errors to the user: the turn degrades to an apology with degradation
// markers set.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	resp, err := h.sys.HandleTurn(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}

		if apology, ok := apologyFor(err); ok {
			h.logger.WarnContext(r.Context(), "turn degraded", "error", err)
			handlers.RespondJSON(w, http.StatusOK, apology)
			return
		}

		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// apologyFor translates known workflow outages into a degraded response.
func apologyFor(err error) (*TurnResponse, bool) {
	var answer string
	switch {
	case errors.Is(err, workflow.ErrRetrievalUnavailable):
		answer = "Sorry, I could not look that up right now. Please try again in a little while."
	case errors.Is(err, workflow.ErrGenerationUnavailable):
		answer = "Sorry, I am having trouble composing an answer right now. Please try again in a little while."
	case errors.Is(err, workflow.ErrLedgerUnavailable):
		answer = "Sorry, I could not reach your spending records right now. Your message was not recorded, please try again."
	case errors.Is(err, workflow.ErrFusionUnavailable):
		answer = "Sorry, I could not check that message right now. Until then, treat it with caution and never share OTPs or PINs."
	default:
		return nil, false
	}

	return &TurnResponse{
		Answer:   answer,
		Domain:   intent.DomainFallback,
		Scope:    profile.ScopeSelf,
		Metadata: Metadata{ReducedConfidence: true},
	}, true
}
