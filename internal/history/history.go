// Package history implements the externally persisted conversation and
// profile state. The core treats it strictly as a request/response
// collaborator: profiles load at turn start and save at turn end, turns
// append after responding, and no writable state is cached across turns.
package history

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/pkg/pagination"
)

// TurnRecord is one persisted conversation turn.
type TurnRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the profile/history persistence contract.
type Store interface {
	Handler() *Handler

	// LoadProfile returns the stored profile for the user; an unknown user
	// yields an empty profile, not an error.
	LoadProfile(ctx context.Context, userID string) (profile.Profile, error)
	SaveProfile(ctx context.Context, userID string, p profile.Profile) error

	AppendTurn(ctx context.Context, record TurnRecord) error
	// Recent returns up to n most recent turns for the user, newest first.
	Recent(ctx context.Context, userID string, n int) ([]TurnRecord, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[TurnRecord], error)
}

// ErrUnavailable indicates a persistence call failed.
var ErrUnavailable = errors.New("history store unavailable")

// MapHTTPStatus maps history errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Summarize renders recent turns (newest first) into a compact plain-text
// summary for classifier and rewrite context, oldest first.
func Summarize(records []TurnRecord) string {
	if len(records) == 0 {
		return "Conversation just started."
	}

	summary := ""
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		summary += "User: " + r.Question + "\nAssistant: " + r.Answer + "\n"
	}
	return summary
}
