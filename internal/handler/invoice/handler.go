package invoice

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/invoice"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *invoice.Service
}

func NewHandler(service *invoice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invoices := r.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/stats", h.Stats)
		invoices.GET("/recent", h.Recent)
		invoices.GET("/status/:status", h.ByStatus)
		invoices.GET("/number/:number", h.GetByNumber)
		invoices.GET("/appointment/:appointmentId", h.GetByAppointment)
		invoices.POST("/generate/:appointmentId", h.Generate)
		invoices.POST("/send-direct/:appointmentId", h.SendDirectEmail)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id", h.Update)
		invoices.PATCH("/:id/status", h.UpdateStatus)
		invoices.PATCH("/:id/pay", h.MarkAsPaid)
		invoices.POST("/:id/send", h.SendEmail)
		invoices.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Generate(c *gin.Context) {
	inv, err := h.service.GenerateFromAppointment(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "invoice generated", inv)
}

func (h *Handler) SendEmail(c *gin.Context) {
	inv, err := h.service.SendEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice emailed", inv)
}

// SendDirectEmail emails a one-off invoice without persisting it.
func (h *Handler) SendDirectEmail(c *gin.Context) {
	inv, err := h.service.SendDirectEmail(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice emailed", inv)
}

func (h *Handler) Get(c *gin.Context) {
	inv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, inv)
}

func (h *Handler) GetByNumber(c *gin.Context) {
	inv, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, inv)
}

func (h *Handler) GetByAppointment(c *gin.Context) {
	inv, err := h.service.GetByAppointment(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, inv)
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
	var req model.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inv, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice updated", inv)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status model.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inv, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice status updated", inv)
}

func (h *Handler) MarkAsPaid(c *gin.Context) {
	var req struct {
		PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	inv, err := h.service.MarkAsPaid(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice marked as paid", inv)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "invoice deleted", nil)
}

func (h *Handler) ByStatus(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByStatus(c.Request.Context(), model.InvoiceStatus(c.Param("status")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Recent(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, err := h.service.Recent(c.Request.Context(), opts.Limit)
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
