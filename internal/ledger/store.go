package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finmitra/finmitra/pkg/graph"
)

const (
	appendCypher = `
MERGE (u:User {id: $user_id})
CREATE (t:Transaction {
	id: $id, amount: $amount, category: $category,
	note: $note, currency: $currency, at: datetime($at)
})
CREATE (u)-[:SPENT]->(t)`

	setBudgetCypher = `
MERGE (u:User {id: $user_id})
MERGE (u)-[:BUDGETS]->(b:Budget {category: $category})
SET b.limit = $limit`

	getBudgetCypher = `
MATCH (u:User {id: $user_id})-[:BUDGETS]->(b:Budget {category: $category})
RETURN b.limit AS limit`

	aggregateCypher = `
MATCH (u:User {id: $user_id})-[:SPENT]->(t:Transaction)
WHERE t.at >= datetime($from) AND t.at < datetime($to)
  AND ($category IS NULL OR t.category = $category)
RETURN coalesce(sum(t.amount), 0.0) AS total`
)

type store struct {
	graph   graph.System
	timeout time.Duration
	logger  *slog.Logger
}

// NewStore creates a Ledger backed by the Neo4j graph. Each call runs as a
// single atomic query with its own timeout; failures map to ErrUnavailable.
func NewStore(g graph.System, timeout time.Duration, logger *slog.Logger) Ledger {
	return &store{
		graph:   g,
		timeout: timeout,
		logger:  logger.With("system", "ledger"),
	}
}

func (s *store) AppendTransaction(ctx context.Context, tx Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	params := map[string]any{
		"user_id":  tx.UserID,
		"id":       tx.ID.String(),
		"amount":   tx.Amount,
		"category": string(tx.Category),
		"note":     tx.Note,
		"currency": tx.Currency,
		"at":       tx.Timestamp.UTC().Format(time.RFC3339),
	}

	if _, err := s.run(ctx, appendCypher, params); err != nil {
		return fmt.Errorf("%w: append transaction: %w", ErrUnavailable, err)
	}

	s.logger.InfoContext(ctx, "transaction recorded",
		"user_id", tx.UserID,
		"amount", tx.Amount,
		"category", tx.Category,
	)
	return nil
}

func (s *store) SetBudget(ctx context.Context, b Budget) error {
	params := map[string]any{
		"user_id":  b.UserID,
		"category": string(b.Category),
		"limit":    b.Limit,
	}

	if _, err := s.run(ctx, setBudgetCypher, params); err != nil {
		return fmt.Errorf("%w: set budget: %w", ErrUnavailable, err)
	}

	s.logger.InfoContext(ctx, "budget set",
		"user_id", b.UserID,
		"category", b.Category,
		"limit", b.Limit,
	)
	return nil
}

func (s *store) GetBudget(ctx context.Context, userID string, category Category) (float64, error) {
	params := map[string]any{
		"user_id":  userID,
		"category": string(category),
	}

	result, err := s.run(ctx, getBudgetCypher, params)
	if err != nil {
		return 0, fmt.Errorf("%w: get budget: %w", ErrUnavailable, err)
	}

	if len(result.Records) == 0 {
		return 0, ErrBudgetNotFound
	}

	return recordFloat(result.Records[0], "limit"), nil
}

func (s *store) AggregateSpend(ctx context.Context, userID string, r DateRange, category *Category) (float64, error) {
	var cat any
	if category != nil {
		cat = string(*category)
	}

	params := map[string]any{
		"user_id":  userID,
		"from":     r.From.UTC().Format(time.RFC3339),
		"to":       r.To.UTC().Format(time.RFC3339),
		"category": cat,
	}

	result, err := s.run(ctx, aggregateCypher, params)
	if err != nil {
		return 0, fmt.Errorf("%w: aggregate spend: %w", ErrUnavailable, err)
	}

	if len(result.Records) == 0 {
		return 0, nil
	}

	return recordFloat(result.Records[0], "total"), nil
}

func (s *store) run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return neo4j.ExecuteQuery(
		callCtx,
		s.graph.Driver(),
		cypher,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.graph.Database()),
	)
}

func recordFloat(record *neo4j.Record, key string) float64 {
	v, ok := record.Get(key)
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
