package search

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/service/search"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *search.Service
}

func NewHandler(service *search.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/search")
	{
		group.GET("", h.Global)
		group.GET("/suggestions", h.Suggestions)
		group.GET("/doctors", h.Doctors)
		group.GET("/clinics", h.Clinics)
		group.GET("/blogs", h.Blogs)
		group.GET("/treatments", h.Treatments)
		group.GET("/patient-stories", h.Stories)
	}
}

// RegisterAdmin mounts the appointment search behind authentication since
// it exposes patient contact details.
func (h *Handler) RegisterAdmin(r *gin.RouterGroup) {
	r.GET("/search/appointments", h.Appointments)
}

// Global searches across entity types. types is a comma separated subset;
// empty means everything.
func (h *Handler) Global(c *gin.Context) {
	term := c.Query("q")
	var types []string
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)

	result, err := h.service.Global(c.Request.Context(), term, types, limit)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, result)
}

func (h *Handler) Suggestions(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	suggestions, err := h.service.Suggestions(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, suggestions)
}

// paged shapes a per-entity search payload with the original pagination key
// names.
func paged[T any](docs []T, total int64, page, limit int64) gin.H {
	if docs == nil {
		docs = []T{}
	}
	return gin.H{
		"results":    docs,
		"pagination": httputil.NewPageMeta(page, limit, total),
	}
}

func (h *Handler) Doctors(c *gin.Context) {
	docs, total, opts, err := h.service.Doctors(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}

func (h *Handler) Clinics(c *gin.Context) {
	docs, total, opts, err := h.service.Clinics(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}

func (h *Handler) Blogs(c *gin.Context) {
	docs, total, opts, err := h.service.Blogs(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}

func (h *Handler) Treatments(c *gin.Context) {
	docs, total, opts, err := h.service.Treatments(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}

func (h *Handler) Stories(c *gin.Context) {
	docs, total, opts, err := h.service.Stories(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}

func (h *Handler) Appointments(c *gin.Context) {
	docs, total, opts, err := h.service.Appointments(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, paged(docs, total, opts.Page, opts.Limit))
}
