package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	analyticsh "github.com/thelivecure/admin-api/internal/handler/analytics"
	appointmenth "github.com/thelivecure/admin-api/internal/handler/appointment"
	authh "github.com/thelivecure/admin-api/internal/handler/auth"
	blogh "github.com/thelivecure/admin-api/internal/handler/blog"
	clinich "github.com/thelivecure/admin-api/internal/handler/clinic"
	doctorh "github.com/thelivecure/admin-api/internal/handler/doctor"
	healthh "github.com/thelivecure/admin-api/internal/handler/health"
	inquiryh "github.com/thelivecure/admin-api/internal/handler/inquiry"
	invoiceh "github.com/thelivecure/admin-api/internal/handler/invoice"
	notificationh "github.com/thelivecure/admin-api/internal/handler/notification"
	searchh "github.com/thelivecure/admin-api/internal/handler/search"
	settingsh "github.com/thelivecure/admin-api/internal/handler/settings"
	statisticsh "github.com/thelivecure/admin-api/internal/handler/statistics"
	storyh "github.com/thelivecure/admin-api/internal/handler/story"
	treatmenth "github.com/thelivecure/admin-api/internal/handler/treatment"
	uploadh "github.com/thelivecure/admin-api/internal/handler/upload"
	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/model"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Appointment  *appointmenth.Handler
	Invoice      *invoiceh.Handler
	Doctor       *doctorh.Handler
	Clinic       *clinich.Handler
	Blog         *blogh.Handler
	Story        *storyh.Handler
	Treatment    *treatmenth.Handler
	Inquiry      *inquiryh.Handler
	Notification *notificationh.Handler
	Settings     *settingsh.Handler
	Search       *searchh.Handler
	Statistics   *statisticsh.Handler
	Analytics    *analyticsh.Handler
	Auth         *authh.Handler
	Upload       *uploadh.Handler
}

type Config struct {
	Mode           string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	Version        string
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	auth     *middleware.AuthMiddleware
	db       *mongo.Database
	config   Config
}

func New(handlers Handlers, auth *middleware.AuthMiddleware, db *mongo.Database, config Config) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}

	return &Router{
		engine:   gin.New(),
		handlers: handlers,
		auth:     auth,
		db:       db,
		config:   config,
	}
}

// Setup wires the middleware chain and mounts every route. Order matters:
// recovery first, then request id so the logger can tag its line.
func (r *Router) Setup() {
	r.engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(),
		middleware.Timeout(r.config.RequestTimeout),
		middleware.CORS(r.config.CORS),
	)
	if r.config.RateLimitRPS > 0 {
		r.engine.Use(middleware.RateLimit(r.config.RateLimitRPS, r.config.RateLimitBurst))
	}

	healthh.NewHandler(r.db, r.config.Version).RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public surface: booking, contact form, published content, search.
	r.handlers.Auth.RegisterPublic(api)
	r.handlers.Appointment.RegisterPublic(api)
	r.handlers.Inquiry.RegisterPublic(api)
	r.handlers.Doctor.RegisterPublic(api)
	r.handlers.Clinic.RegisterPublic(api)
	r.handlers.Blog.RegisterPublic(api)
	r.handlers.Story.RegisterPublic(api)
	r.handlers.Treatment.RegisterPublic(api)
	r.handlers.Search.RegisterRoutes(api)

	// Admin surface behind authentication.
	admin := api.Group("/admin")
	admin.Use(r.auth.Authenticate())
	{
		r.handlers.Auth.RegisterRoutes(admin)
		r.handlers.Appointment.RegisterRoutes(admin)
		r.handlers.Invoice.RegisterRoutes(admin)
		r.handlers.Doctor.RegisterRoutes(admin)
		r.handlers.Clinic.RegisterRoutes(admin)
		r.handlers.Blog.RegisterRoutes(admin)
		r.handlers.Story.RegisterRoutes(admin)
		r.handlers.Treatment.RegisterRoutes(admin)
		r.handlers.Inquiry.RegisterRoutes(admin)
		r.handlers.Notification.RegisterRoutes(admin)
		r.handlers.Statistics.RegisterRoutes(admin)
		r.handlers.Analytics.RegisterRoutes(admin)
		r.handlers.Upload.RegisterRoutes(admin)
		r.handlers.Search.RegisterAdmin(admin)
	}

	// Site settings are admin-role only; staff tokens are rejected.
	adminOnly := admin.Group("")
	adminOnly.Use(r.auth.RequireRole(string(model.UserRoleAdmin)))
	r.handlers.Settings.RegisterRoutes(adminOnly)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
