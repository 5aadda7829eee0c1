package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/notification"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *notification.Service
}

func NewHandler(service *notification.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the notification endpoints. All of them operate on
// the authenticated user's own notifications.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread", h.Unread)
		notifications.GET("/unread/count", h.UnreadCount)
		notifications.POST("", h.Send)
		notifications.PATCH("/read-all", h.MarkAllRead)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.PATCH("/:id/unread", h.MarkUnread)
		notifications.PATCH("/:id/dismiss", h.Dismiss)
		notifications.DELETE("/all", h.DeleteAll)
		notifications.DELETE("/:id", h.Delete)
	}
}

func recipientID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func (h *Handler) Send(c *gin.Context) {
	var req model.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	n, err := h.service.Send(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "notification sent", n)
}

func (h *Handler) List(c *gin.Context) {
	filters := model.NotificationFilters{
		Type:   model.NotificationType(c.Query("type")),
		Status: model.NotificationStatus(c.Query("status")),
	}
	if raw := c.Query("read"); raw != "" {
		read := raw == "true"
		filters.Read = &read
	}

	opts := handler.ListOptions(c)
	docs, total, err := h.service.ListForRecipient(c.Request.Context(), recipientID(c), filters, opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Unread(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Unread(c.Request.Context(), recipientID(c), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	n, err := h.service.MarkRead(c.Request.Context(), c.Param("id"), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notification marked as read", n)
}

func (h *Handler) MarkUnread(c *gin.Context) {
	n, err := h.service.MarkUnread(c.Request.Context(), c.Param("id"), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notification marked as unread", n)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notifications marked as read", gin.H{"count": count})
}

func (h *Handler) Dismiss(c *gin.Context) {
	n, err := h.service.Dismiss(c.Request.Context(), c.Param("id"), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notification dismissed", n)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), recipientID(c)); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notification deleted", nil)
}

func (h *Handler) DeleteAll(c *gin.Context) {
	count, err := h.service.DeleteAll(c.Request.Context(), recipientID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "notifications deleted", gin.H{"count": count})
}
