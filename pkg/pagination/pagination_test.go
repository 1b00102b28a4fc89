package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/finmitra/finmitra/pkg/pagination"
	"github.com/finmitra/finmitra/pkg/query"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		req      pagination.PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid untouched", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(testConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "pension")
	values.Set("sort", "-createdAt")

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("page/size = %d/%d, want 2/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "pension" {
		t.Errorf("Search = %v, want pension", req.Search)
	}
	want := pagination.SortFields{{Field: "createdAt", Descending: true}}
	if diff := cmp.Diff(want, req.Sort); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}

func TestPageRequestFromQueryEmpty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("page/size = %d/%d, want defaults 1/20", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  pagination.SortFields
	}{
		{"string form", `"name,-createdAt"`, pagination.SortFields{
			{Field: "name"},
			{Field: "createdAt", Descending: true},
		}},
		{"array form", `[{"Field":"name","Descending":false}]`, pagination.SortFields{
			{Field: "name"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got pagination.SortFields
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"exact division", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"empty result", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[query.SortField](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("defaults = %d/%d, want 20/100", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}

func TestConfigFinalizeEnvOverride(t *testing.T) {
	t.Setenv("TEST_PAGE_DEFAULT", "15")
	t.Setenv("TEST_PAGE_MAX", "60")

	var cfg pagination.Config
	err := cfg.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGE_DEFAULT",
		MaxPageSize:     "TEST_PAGE_MAX",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.DefaultPageSize != 15 || cfg.MaxPageSize != 60 {
		t.Errorf("env override = %d/%d, want 15/60", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}

func TestConfigFinalizeInvalid(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("default exceeding max should fail validation")
	}
}
