package treatment

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/treatment"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *treatment.Service
}

func NewHandler(service *treatment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.GET("", h.Published)
		treatments.GET("/url/:url", h.GetByURL)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.GET("", h.List)
		treatments.POST("", h.Create)
		treatments.GET("/:id", h.Get)
		treatments.PUT("/:id", h.Update)
		treatments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	tr, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "treatment created", tr)
}

func (h *Handler) Get(c *gin.Context) {
	tr, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, tr)
}

func (h *Handler) GetByURL(c *gin.Context) {
	tr, err := h.service.GetByURL(c.Request.Context(), c.Param("url"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, tr)
}

func (h *Handler) List(c *gin.Context) {
	docs, total, opts, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Published(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Published(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Update(c *gin.Context) {
	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		httputil.BindError(c, err)
		return
	}

	tr, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "treatment updated", tr)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "treatment deleted", nil)
}
