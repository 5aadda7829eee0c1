package blog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/blog"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *blog.Service
}

func NewHandler(service *blog.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the published-only endpoints. Reading a post by
// slug counts a view.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.Published)
		blogs.GET("/featured", h.Featured)
		blogs.GET("/recent", h.Recent)
		blogs.GET("/categories", h.Categories)
		blogs.GET("/category/:category", h.ByCategory)
		blogs.GET("/slug/:slug", h.GetBySlug)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.List)
		blogs.POST("", h.Create)
		blogs.GET("/:id", h.Get)
		blogs.PUT("/:id", h.Update)
		blogs.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "blog created", post)
}

func (h *Handler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, post)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, post)
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
	docs, total, opts, err := h.service.Published(c.Request.Context(), c.Request.URL.Query())
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

	post, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "blog updated", post)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "blog deleted", nil)
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

func (h *Handler) Categories(c *gin.Context) {
	values, err := h.service.Categories(c.Request.Context())
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
