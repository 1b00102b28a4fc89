package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/finmitra/finmitra/pkg/repository"
)

// SemanticStore searches the indexed passage corpus in PostgreSQL using
// full-text ranking. Index population happens out of band through the
// document ingestion pipeline.
type SemanticStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSemanticStore creates a semantic Searcher over the passages table.
func NewSemanticStore(db *sql.DB, logger *slog.Logger) *SemanticStore {
	return &SemanticStore{
		db:     db,
		logger: logger.With("source", "semantic"),
	}
}

// Search implements Searcher.
func (s *SemanticStore) Search(ctx context.Context, query string, limit int) ([]Passage, error) {
	const q = `
		SELECT id::text, content, ts_rank(search_vector, plainto_tsquery('english', $1)) AS score
		FROM passages
		WHERE search_vector @@ plainto_tsquery('english', $1)
		ORDER BY score DESC
		LIMIT $2`

	passages, err := repository.QueryMany(ctx, s.db, q, []any{query, limit}, scanPassage(SourceSemantic))
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	return passages, nil
}

func scanPassage(kind SourceKind) repository.ScanFunc[Passage] {
	return func(s repository.Scanner) (Passage, error) {
		var p Passage
		if err := s.Scan(&p.Origin, &p.Content, &p.Score); err != nil {
			return p, err
		}
		p.Source = kind
		return p, nil
	}
}
