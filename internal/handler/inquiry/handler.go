package inquiry

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/inquiry"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *inquiry.Service
}

func NewHandler(service *inquiry.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the contact form endpoint.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	r.POST("/inquiries", h.Create)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	inquiries := r.Group("/inquiries")
	{
		inquiries.GET("", h.List)
		inquiries.GET("/stats", h.Stats)
		inquiries.GET("/new", h.New)
		inquiries.GET("/urgent", h.Urgent)
		inquiries.GET("/recent", h.Recent)
		inquiries.GET("/status/:status", h.ByStatus)
		inquiries.GET("/type/:type", h.ByType)
		inquiries.GET("/priority/:priority", h.ByPriority)
		inquiries.GET("/:id", h.Get)
		inquiries.PATCH("/:id/assign", h.Assign)
		inquiries.PATCH("/:id/respond", h.Respond)
		inquiries.PATCH("/:id/status", h.UpdateStatus)
		inquiries.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inq, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "inquiry received", inq)
}

func (h *Handler) Get(c *gin.Context) {
	inq, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, inq)
}

func (h *Handler) List(c *gin.Context) {
	docs, total, opts, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Assign(c *gin.Context) {
	var req struct {
		AssigneeID string `json:"assigneeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inq, err := h.service.Assign(c.Request.Context(), c.Param("id"), req.AssigneeID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "inquiry assigned", inq)
}

// Respond records the reply under the authenticated user.
func (h *Handler) Respond(c *gin.Context) {
	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	responderID := c.GetString(middleware.ContextUserID)
	inq, err := h.service.Respond(c.Request.Context(), c.Param("id"), responderID, req.Response)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "response recorded", inq)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status model.InquiryStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inq, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "inquiry status updated", inq)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "inquiry deleted", nil)
}

func (h *Handler) ByStatus(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByStatus(c.Request.Context(), model.InquiryStatus(c.Param("status")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByType(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByType(c.Request.Context(), model.InquiryType(c.Param("type")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByPriority(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByPriority(c.Request.Context(), model.InquiryPriority(c.Param("priority")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) New(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.New(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Urgent(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Urgent(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
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

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
