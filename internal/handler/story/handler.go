package story

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/story"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *story.Service
}

func NewHandler(service *story.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	stories := r.Group("/stories")
	{
		stories.GET("/featured", h.Featured)
		stories.GET("/recent", h.Recent)
		stories.GET("/categories", h.Categories)
		stories.GET("/conditions", h.Conditions)
		stories.GET("/category/:category", h.ByCategory)
		stories.GET("/condition/:condition", h.ByCondition)
		stories.POST("", h.Create)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stories := r.Group("/stories")
	{
		stories.GET("", h.List)
		stories.GET("/rating/:min", h.ByMinRating)
		stories.GET("/:id", h.Get)
		stories.PUT("/:id", h.Update)
		stories.PATCH("/:id/verify", h.Verify)
		stories.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	st, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "story submitted", st)
}

func (h *Handler) Get(c *gin.Context) {
	st, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, st)
}

func (h *Handler) List(c *gin.Context) {
	docs, total, opts, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
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

	st, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "story updated", st)
}

func (h *Handler) Verify(c *gin.Context) {
	st, err := h.service.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "story verified", st)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "story deleted", nil)
}

func (h *Handler) Featured(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Featured(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByCategory(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByCategory(c.Request.Context(), c.Param("category"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByCondition(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByCondition(c.Request.Context(), c.Param("condition"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByMinRating(c *gin.Context) {
	min, err := strconv.Atoi(c.Param("min"))
	if err != nil {
		httputil.BadRequest(c, "invalid minimum rating")
		return
	}

	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByMinRating(c.Request.Context(), min, opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Categories(c *gin.Context) {
	values, err := h.service.Categories(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *Handler) Conditions(c *gin.Context) {
	values, err := h.service.Conditions(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *Handler) Recent(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	docs, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, docs)
}
