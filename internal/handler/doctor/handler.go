package doctor

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/handler"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/doctor"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *doctor.Service
}

func NewHandler(service *doctor.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the read-only endpoints the patient site uses.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.List)
		doctors.GET("/specialties", h.Specialties)
		doctors.GET("/categories", h.Categories)
		doctors.GET("/cities", h.Cities)
		doctors.GET("/specialty/:specialty", h.BySpecialty)
		doctors.GET("/city/:city", h.ByCity)
		doctors.GET("/category/:category", h.ByCategory)
		doctors.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.List)
		doctors.GET("/stats", h.Stats)
		doctors.GET("/active", h.Active)
		doctors.POST("", h.Create)
		doctors.GET("/:id", h.Get)
		doctors.PUT("/:id", h.Update)
		doctors.PATCH("/:id/status", h.UpdateStatus)
		doctors.PATCH("/:id/rating", h.UpdateRating)
		doctors.PATCH("/:id/fees", h.UpdateFees)
		doctors.POST("/:id/qualifications", h.AddQualification)
		doctors.PUT("/:id/qualifications/:qualificationId", h.UpdateQualification)
		doctors.DELETE("/:id/qualifications/:qualificationId", h.RemoveQualification)
		doctors.POST("/:id/cities/:city", h.AddCity)
		doctors.DELETE("/:id/cities/:city", h.RemoveCity)
		doctors.POST("/:id/diseases/:disease", h.AddDisease)
		doctors.DELETE("/:id/diseases/:disease", h.RemoveDisease)
		doctors.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "doctor created", doc)
}

func (h *Handler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, doc)
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

	doc, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "doctor updated", doc)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status model.DoctorStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "doctor status updated", doc)
}

func (h *Handler) UpdateRating(c *gin.Context) {
	var req model.UpdateDoctorRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.UpdateRating(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "doctor rating updated", doc)
}

func (h *Handler) UpdateFees(c *gin.Context) {
	var req struct {
		ConsultationFees float64 `json:"consultationFees" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.UpdateFees(c.Request.Context(), c.Param("id"), req.ConsultationFees)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "consultation fees updated", doc)
}

func (h *Handler) AddQualification(c *gin.Context) {
	var req model.QualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.AddQualification(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "qualification added", doc)
}

func (h *Handler) UpdateQualification(c *gin.Context) {
	var req model.QualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	doc, err := h.service.UpdateQualification(c.Request.Context(), c.Param("id"), c.Param("qualificationId"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "qualification updated", doc)
}

func (h *Handler) RemoveQualification(c *gin.Context) {
	doc, err := h.service.RemoveQualification(c.Request.Context(), c.Param("id"), c.Param("qualificationId"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "qualification removed", doc)
}

func (h *Handler) AddCity(c *gin.Context) {
	doc, err := h.service.AddCity(c.Request.Context(), c.Param("id"), c.Param("city"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "city added", doc)
}

func (h *Handler) RemoveCity(c *gin.Context) {
	doc, err := h.service.RemoveCity(c.Request.Context(), c.Param("id"), c.Param("city"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "city removed", doc)
}

func (h *Handler) AddDisease(c *gin.Context) {
	doc, err := h.service.AddDisease(c.Request.Context(), c.Param("id"), c.Param("disease"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "disease added", doc)
}

func (h *Handler) RemoveDisease(c *gin.Context) {
	doc, err := h.service.RemoveDisease(c.Request.Context(), c.Param("id"), c.Param("disease"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "disease removed", doc)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "doctor deleted", nil)
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

func (h *Handler) ByCity(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.ByCity(c.Request.Context(), c.Param("city"), opts)
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

func (h *Handler) Active(c *gin.Context) {
	opts := handler.ListOptions(c)
	docs, total, err := h.service.Active(c.Request.Context(), opts)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, handler.Paginated(docs, total, opts))
}

func (h *Handler) Specialties(c *gin.Context) {
	values, err := h.service.Specialties(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *Handler) Categories(c *gin.Context) {
	values, err := h.service.Categories(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *Handler) Cities(c *gin.Context) {
	values, err := h.service.Cities(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
