// Package handler holds the HTTP layer. Each entity gets its own
// subpackage with a Handler that registers routes on a gin router group.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

// Paginated shapes a list payload using the label names the caller
// configured, defaulting to docs/totalDocs/totalPages/page/limit.
func Paginated[T any](docs []T, total int64, opts query.Options) gin.H {
	labels := opts.Labels
	if labels.Docs == "" {
		labels = query.DefaultLabels()
	}
	meta := httputil.NewPageMeta(opts.Page, opts.Limit, total)
	if docs == nil {
		docs = []T{}
	}
	return gin.H{
		labels.Docs:       docs,
		labels.TotalDocs:  total,
		labels.TotalPages: meta.TotalPages,
		labels.Page:       opts.Page,
		labels.Limit:      opts.Limit,
	}
}

// ListOptions extracts pagination and sorting for endpoints whose filter is
// fixed server-side.
func ListOptions(c *gin.Context) query.Options {
	_, opts := query.Build(c.Request.URL.Query(), query.Config{DefaultFilter: query.NoDefaultFilter})
	return opts
}
