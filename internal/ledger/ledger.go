// Package ledger defines the transaction and budget contract the
// finance-tracking workflow branch consumes, plus the statement parser that
// turns free-text spending utterances into structured ledger calls. The
// store itself lives in the scheme knowledge graph's Neo4j instance.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category is a fixed spending category.
type Category string

// The closed category set.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Transaction is one recorded spend. Referenced, not owned, by the core.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	Category  Category  `json:"category"`
	Note      string    `json:"note"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// Budget is a per-category spending limit.
type Budget struct {
	UserID   string   `json:"user_id"`
	Category Category `json:"category"`
	Limit    float64  `json:"limit"`
}

// DateRange bounds an aggregation query: From inclusive, To exclusive.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Ledger errors.
var (
	// ErrUnavailable indicates the ledger store call failed or timed out.
	ErrUnavailable = errors.New("ledger unavailable")
	// ErrBudgetNotFound indicates no budget exists for the category.
	ErrBudgetNotFound = errors.New("budget not found")
)

// Ledger is the read-write contract over the external transaction store.
// Every call is single-shot: no multi-statement transactions span calls.
type Ledger interface {
	AppendTransaction(ctx context.Context, tx Transaction) error
	SetBudget(ctx context.Context, b Budget) error
	GetBudget(ctx context.Context, userID string, category Category) (float64, error)
	AggregateSpend(ctx context.Context, userID string, r DateRange, category *Category) (float64, error)
}
