package analytics

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/service/analytics"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	{
		group.GET("/revenue", h.Revenue)
		group.GET("/conversions", h.Conversions)
		group.GET("/doctor-performance", h.DoctorPerformance)
		group.GET("/clinic-performance", h.ClinicPerformance)
		group.GET("/content-performance", h.ContentPerformance)
		group.GET("/geographic-distribution", h.Geographic)
	}
}

// parseRange reads optional startDate/endDate parameters as 2006-01-02 or
// RFC3339.
func parseRange(c *gin.Context) (analytics.Range, bool) {
	rng := analytics.Range{}
	for _, bound := range []struct {
		param  string
		target **time.Time
	}{
		{"startDate", &rng.Start},
		{"endDate", &rng.End},
	} {
		raw := c.Query(bound.param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			httputil.BadRequest(c, "invalid "+bound.param+": "+raw)
			return rng, false
		}
		*bound.target = &t
	}
	return rng, true
}

func (h *Handler) Revenue(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	buckets, err := h.service.Revenue(c.Request.Context(), c.Query("period"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, buckets)
}

func (h *Handler) Conversions(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	conversions, err := h.service.Conversions(c.Request.Context(), c.Query("type"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, conversions)
}

func (h *Handler) DoctorPerformance(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	buckets, err := h.service.DoctorPerformance(c.Request.Context(), c.Query("doctorId"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, buckets)
}

func (h *Handler) ClinicPerformance(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	buckets, err := h.service.ClinicPerformance(c.Request.Context(), c.Query("clinicId"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, buckets)
}

func (h *Handler) ContentPerformance(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	perf, err := h.service.ContentPerformance(c.Request.Context(), c.Query("type"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, perf)
}

func (h *Handler) Geographic(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	dist, err := h.service.Geographic(c.Request.Context(), c.Query("type"), rng)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, dist)
}
