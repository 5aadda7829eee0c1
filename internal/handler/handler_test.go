package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelivecure/admin-api/internal/query"
)

func TestPaginated_DefaultLabels(t *testing.T) {
	docs := []string{"a", "b"}
	payload := Paginated(docs, 12, query.Options{Page: 2, Limit: 5})

	assert.Equal(t, docs, payload["docs"])
	assert.Equal(t, int64(12), payload["totalDocs"])
	assert.Equal(t, int64(3), payload["totalPages"])
	assert.Equal(t, int64(2), payload["page"])
	assert.Equal(t, int64(5), payload["limit"])
}

func TestPaginated_CustomLabels(t *testing.T) {
	opts := query.Options{
		Page:  1,
		Limit: 10,
		Labels: query.Labels{
			Docs: "items", TotalDocs: "total", TotalPages: "pages",
			Page: "current", Limit: "perPage",
		},
	}
	payload := Paginated([]int{1}, 1, opts)

	assert.Contains(t, payload, "items")
	assert.Contains(t, payload, "total")
	assert.NotContains(t, payload, "docs")
}

func TestPaginated_NilDocsBecomesEmptySlice(t *testing.T) {
	var docs []string
	payload := Paginated(docs, 0, query.Options{Page: 1, Limit: 5})
	assert.NotNil(t, payload["docs"])
	assert.Len(t, payload["docs"], 0)
}

func TestListOptions_ParsesPageAndLimit(t *testing.T) {
	params := url.Values{"page": {"3"}, "limit": {"20"}}
	_, opts := query.Build(params, query.Config{DefaultFilter: query.NoDefaultFilter})
	assert.Equal(t, int64(3), opts.Page)
	assert.Equal(t, int64(20), opts.Limit)
	assert.Equal(t, int64(40), opts.Skip())
}
