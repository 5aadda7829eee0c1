package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/service/auth"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/seed", h.SeedAdmin)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OKMessage(c, "login successful", resp)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, user)
}

// SeedAdmin bootstraps the first admin account. It only works on an empty
// user collection.
func (h *Handler) SeedAdmin(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	user, err := h.service.SeedAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, "admin account created", user)
}
