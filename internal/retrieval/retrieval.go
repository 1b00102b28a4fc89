// Package retrieval provides a uniform gateway over the heterogeneous
// grounding backends: the semantic passage store, the structured scheme
// graph, and archived conversation memory.
package retrieval

import "errors"

// SourceKind identifies a retrieval backend class.
type SourceKind string

// Source kinds, in descending tie-break priority.
const (
	SourceGraph    SourceKind = "graph"
	SourceSemantic SourceKind = "semantic"
	SourceMemory   SourceKind = "memory"
)

// sourcePriority breaks ranking ties between passages with equal relevance
// scores: graph beats semantic beats memory.
var sourcePriority = map[SourceKind]int{
	SourceGraph:    3,
	SourceSemantic: 2,
	SourceMemory:   1,
}

// Passage is one retrieved grounding unit. Never mutated after retrieval.
type Passage struct {
	Source  SourceKind `json:"source"`
	Content string     `json:"content"`
	Score   float64    `json:"score"`
	Origin  string     `json:"origin"`
}

// ErrUnavailable indicates every requested source kind failed.
var ErrUnavailable = errors.New("all retrieval sources unavailable")
