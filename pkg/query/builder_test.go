package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/finmitra/finmitra/pkg/query"
)

func testProjection() *query.ProjectionMap {
	p := query.NewProjectionMap("public", "history", "h")
	p.Project("id", "id").
		Project("user_id", "userId").
		Project("question", "question").
		Project("created_at", "createdAt")
	return p
}

func TestBuildRenumbersParameters(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("userId", "u-1").
		WhereSearch(ptr("pension"), "question")

	sql, args := b.Build()

	wantSQL := "SELECT h.id, h.user_id, h.question, h.created_at " +
		"FROM public.history h " +
		"WHERE h.user_id = $1 AND (h.question ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}

	wantArgs := []any{"u-1", "%pension%"}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "createdAt", Descending: true})
	b.WhereEquals("userId", "u-1")

	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT h.id, h.user_id, h.question, h.created_at " +
		"FROM public.history h " +
		"WHERE h.user_id = $1 " +
		"ORDER BY h.created_at DESC " +
		"LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "u-1" {
		t.Errorf("args = %v, want [u-1]", args)
	}
}

func TestBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("userId", "u-1")

	sql, _ := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.history h WHERE h.user_id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestWhereEqualsNilIsNoop(t *testing.T) {
	var domain *string
	b := query.NewBuilder(testProjection())
	b.WhereEquals("userId", domain)

	sql, args := b.Build()

	want := "SELECT h.id, h.user_id, h.question, h.created_at FROM public.history h"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestOrderByFieldsOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "createdAt", Descending: true})
	b.OrderByFields([]query.SortField{{Field: "question"}})

	sql, _ := b.Build()

	want := "SELECT h.id, h.user_id, h.question, h.created_at " +
		"FROM public.history h " +
		"ORDER BY h.question ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "question", []query.SortField{{Field: "question"}}},
		{
			"mixed directions",
			"question,-createdAt",
			[]query.SortField{
				{Field: "question"},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			"whitespace trimmed",
			" question , -createdAt ",
			[]query.SortField{
				{Field: "question"},
				{Field: "createdAt", Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSortFields(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func ptr(s string) *string {
	return &s
}
