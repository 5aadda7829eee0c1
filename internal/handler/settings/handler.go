package settings

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/settings"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/settings")
	{
		group.GET("", h.ListAll)
		group.GET("/:type", h.Get)
		group.PUT("/:type", h.Upsert)
	}
}

func (h *Handler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), model.SettingsType(c.Param("type")))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, s)
}

func (h *Handler) Upsert(c *gin.Context) {
	var data bson.M
	if err := c.ShouldBindJSON(&data); err != nil {
		httputil.BindError(c, err)
		return
	}

	updatedBy := c.GetString(middleware.ContextUserEmail)
	s, err := h.service.Upsert(c.Request.Context(), model.SettingsType(c.Param("type")), data, updatedBy)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "settings saved", s)
}

func (h *Handler) ListAll(c *gin.Context) {
	all, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, all)
}
