package scams

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/finmitra/finmitra/pkg/handlers"
	"github.com/finmitra/finmitra/pkg/routes"
)

// Handler provides HTTP endpoints for scam classification.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// CheckRequest is the JSON body for a classification call.
type CheckRequest struct {
	Text    string `json:"text"`
	Sender  string `json:"sender,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "scams"),
	}
}

// Routes returns the route group definition for scam endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/scams",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/check", Handler: h.Check},
		},
	}
}

// Check classifies a message and returns the fused verdict.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("text required"))
		return
	}

	var meta *SenderMeta
	if req.Sender != "" || req.Subject != "" {
		meta = &SenderMeta{Sender: req.Sender, Subject: req.Subject}
	}

	verdict, err := h.sys.Classify(r.Context(), req.Text, meta)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, verdict)
}
