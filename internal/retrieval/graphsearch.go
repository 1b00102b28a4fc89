package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finmitra/finmitra/pkg/graph"
)

// schemeSearchCypher queries the full-text index over scheme nodes and
// flattens each hit into a passage. Index creation is part of graph
// provisioning, not this core.
const schemeSearchCypher = `
CALL db.index.fulltext.queryNodes('schemeSearch', $query)
YIELD node, score
RETURN elementId(node) AS origin,
       node.name + ': ' + coalesce(node.summary, '') AS content,
       score
ORDER BY score DESC
LIMIT $limit`

// GraphStore searches the structured scheme knowledge graph in Neo4j.
type GraphStore struct {
	graph  graph.System
	logger *slog.Logger
}

// NewGraphStore creates a graph Searcher over the scheme knowledge graph.
func NewGraphStore(g graph.System, logger *slog.Logger) *GraphStore {
	return &GraphStore{
		graph:  g,
		logger: logger.With("source", "graph"),
	}
}

// Search implements Searcher.
func (s *GraphStore) Search(ctx context.Context, query string, limit int) ([]Passage, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		s.graph.Driver(),
		schemeSearchCypher,
		map[string]any{"query": query, "limit": limit},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.graph.Database()),
	)
	if err != nil {
		return nil, fmt.Errorf("graph search: %w", err)
	}

	passages := make([]Passage, 0, len(result.Records))
	for _, record := range result.Records {
		p := Passage{Source: SourceGraph}

		if v, ok := record.Get("origin"); ok {
			p.Origin, _ = v.(string)
		}
		if v, ok := record.Get("content"); ok {
			p.Content, _ = v.(string)
		}
		if v, ok := record.Get("score"); ok {
			p.Score, _ = v.(float64)
		}

		passages = append(passages, p)
	}

	return passages, nil
}
