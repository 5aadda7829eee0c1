package clinic

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/clinic"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.List)
		clinics.GET("/emergency", h.EmergencyCenters)
		clinics.GET("/open-24h", h.OpenAllDay)
		clinics.GET("/city/:city", h.ByCity)
		clinics.GET("/type/:type", h.ByType)
		clinics.GET("/specialty/:specialty", h.BySpecialty)
		clinics.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.List)
		clinics.GET("/stats", h.Stats)
		clinics.GET("/amenities", h.WithAmenities)
		clinics.POST("", h.Create)
		clinics.GET("/:id", h.Get)
		clinics.PUT("/:id", h.Update)
		clinics.PATCH("/:id/status", h.UpdateStatus)
		clinics.PUT("/:id/working-hours", h.UpdateWorkingHours)
		clinics.POST("/:id/specialties/:specialty", h.AddSpecialty)
		clinics.DELETE("/:id/specialties/:specialty", h.RemoveSpecialty)
		clinics.POST("/:id/facilities/:facility", h.AddFacility)
		clinics.DELETE("/:id/facilities/:facility", h.RemoveFacility)
		clinics.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	cl, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "clinic created", cl)
}

func (h *Handler) Get(c *gin.Context) {
	cl, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cl)
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

	cl, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "clinic updated", cl)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status model.ClinicStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	cl, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "clinic status updated", cl)
}

func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	var hours model.WorkingHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		httputil.BindError(c, err)
		return
	}

	cl, err := h.service.UpdateWorkingHours(c.Request.Context(), c.Param("id"), hours)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "working hours updated", cl)
}

func (h *Handler) AddSpecialty(c *gin.Context) {
	cl, err := h.service.AddSpecialty(c.Request.Context(), c.Param("id"), c.Param("specialty"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "specialty added", cl)
}

func (h *Handler) RemoveSpecialty(c *gin.Context) {
	cl, err := h.service.RemoveSpecialty(c.Request.Context(), c.Param("id"), c.Param("specialty"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "specialty removed", cl)
}

func (h *Handler) AddFacility(c *gin.Context) {
	cl, err := h.service.AddFacility(c.Request.Context(), c.Param("id"), c.Param("facility"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "facility added", cl)
}

func (h *Handler) RemoveFacility(c *gin.Context) {
	cl, err := h.service.RemoveFacility(c.Request.Context(), c.Param("id"), c.Param("facility"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "facility removed", cl)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "clinic deleted", nil)
}

func (h *Handler) ByCity(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByCity(c.Request.Context(), c.Param("city"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) ByType(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByType(c.Request.Context(), model.ClinicType(c.Param("type")), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) BySpecialty(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.BySpecialty(c.Request.Context(), c.Param("specialty"), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) EmergencyCenters(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.EmergencyCenters(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) OpenAllDay(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.OpenAllDay(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

// WithAmenities filters by a comma separated amenities query param; all
// listed amenities must be present.
func (h *Handler) WithAmenities(c *gin.Context) {
	raw := c.Query("amenities")
	if raw == "" {
		httputil.BadRequest(c, "amenities query parameter is required")
		return
	}
	amenities := []string{}
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}

	opts := handler.ListOptions(c)
	docs, total, err := h.service.WithAmenities(c.Request.Context(), amenities, opts)
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
