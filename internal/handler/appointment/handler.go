package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/appointment"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the unauthenticated booking endpoint.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	r.POST("/appointments", h.Create)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.GET("/pending", h.Pending)
		appointments.GET("/today", h.Today)
		appointments.GET("/upcoming", h.Upcoming)
		appointments.GET("/stats", h.Stats)
		appointments.GET("/status/:status", h.ByStatus)
		appointments.GET("/doctor/:doctorId", h.ByDoctor)
		appointments.GET("/clinic/:clinicId", h.ByClinic)
		appointments.GET("/patient/:email", h.ByPatientEmail)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/status", h.UpdateStatus)
		appointments.PATCH("/:id/confirm", h.Confirm)
		appointments.PATCH("/:id/cancel", h.Cancel)
		appointments.PATCH("/:id/reschedule", h.Reschedule)
		appointments.PATCH("/:id/complete", h.Complete)
		appointments.PATCH("/:id/payment", h.UpdatePayment)
		appointments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "appointment booked successfully", apt)
}

func (h *Handler) Get(c *gin.Context) {
	apt, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	docs, total, opts, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment status updated", apt)
}

func (h *Handler) Confirm(c *gin.Context) {
	var req model.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.Confirm(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment confirmed", apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment cancelled", apt)
}

func (h *Handler) Reschedule(c *gin.Context) {
	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment rescheduled", apt)
}

func (h *Handler) Complete(c *gin.Context) {
	var req model.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.Complete(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment completed", apt)
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	var req model.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	apt, err := h.service.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "payment status updated", apt)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "appointment deleted", nil)
}

func (h *Handler) ByStatus(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByStatus(c.Request.Context(), model.AppointmentStatus(c.Param("status")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByDoctor(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByDoctor(c.Request.Context(), c.Param("doctorId"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByClinic(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByClinic(c.Request.Context(), c.Param("clinicId"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByPatientEmail(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByPatientEmail(c.Request.Context(), c.Param("email"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Pending(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Pending(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Today(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Today(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Upcoming(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Upcoming(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
