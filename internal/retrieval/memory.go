package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/finmitra/finmitra/pkg/repository"
)

// MemoryStore searches archived conversation turns so prior explanations
// can ground follow-up questions.
type MemoryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMemoryStore creates a memory Searcher over the history table.
func NewMemoryStore(db *sql.DB, logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		db:     db,
		logger: logger.With("source", "memory"),
	}
}

// Search implements Searcher.
func (s *MemoryStore) Search(ctx context.Context, query string, limit int) ([]Passage, error) {
	const q = `
		SELECT id::text, question || E'\n' || answer,
			   ts_rank(search_vector, plainto_tsquery('english', $1)) AS score
		FROM history
		WHERE search_vector @@ plainto_tsquery('english', $1)
		ORDER BY score DESC, created_at DESC
		LIMIT $2`

	passages, err := repository.QueryMany(ctx, s.db, q, []any{query, limit}, scanPassage(SourceMemory))
	if err != nil {
		return nil, fmt.Errorf("memory search: %w", err)
	}
	return passages, nil
}
