package statistics

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/service/statistics"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *statistics.Service
}

func NewHandler(service *statistics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/statistics/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, dashboard)
}
