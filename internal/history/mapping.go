package history

import "github.com/finmitra/finmitra/pkg/query"

var turnProjection = func() *query.ProjectionMap {
	p := query.NewProjectionMap("public", "history", "h")
	p.Project("id", "id").
		Project("user_id", "userId").
		Project("question", "question").
		Project("answer", "answer").
		Project("domain", "domain").
		Project("created_at", "createdAt")
	return p
}()

var defaultTurnSort = []query.SortField{
	{Field: "createdAt", Descending: true},
}
