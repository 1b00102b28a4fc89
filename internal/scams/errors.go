package scams

import (
	"errors"
	"net/http"
)

// ErrInsufficientSignals indicates every signal source was unavailable.
// Single-source failures degrade the verdict instead of producing this.
var ErrInsufficientSignals = errors.New("all scam signal sources unavailable")

// MapHTTPStatus maps scam classification errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInsufficientSignals) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
