package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/thelivecure/admin-api/internal/config"
	"github.com/thelivecure/admin-api/internal/email"
	analyticsh "github.com/thelivecure/admin-api/internal/handler/analytics"
	appointmenth "github.com/thelivecure/admin-api/internal/handler/appointment"
	authh "github.com/thelivecure/admin-api/internal/handler/auth"
	blogh "github.com/thelivecure/admin-api/internal/handler/blog"
	clinich "github.com/thelivecure/admin-api/internal/handler/clinic"
	doctorh "github.com/thelivecure/admin-api/internal/handler/doctor"
	inquiryh "github.com/thelivecure/admin-api/internal/handler/inquiry"
	invoiceh "github.com/thelivecure/admin-api/internal/handler/invoice"
	notificationh "github.com/thelivecure/admin-api/internal/handler/notification"
	searchh "github.com/thelivecure/admin-api/internal/handler/search"
	settingsh "github.com/thelivecure/admin-api/internal/handler/settings"
	statisticsh "github.com/thelivecure/admin-api/internal/handler/statistics"
	storyh "github.com/thelivecure/admin-api/internal/handler/story"
	treatmenth "github.com/thelivecure/admin-api/internal/handler/treatment"
	uploadh "github.com/thelivecure/admin-api/internal/handler/upload"
	"github.com/thelivecure/admin-api/internal/jobs"
	"github.com/thelivecure/admin-api/internal/middleware"
	"github.com/thelivecure/admin-api/internal/repository/mongodb"
	"github.com/thelivecure/admin-api/internal/router"
	analyticsService "github.com/thelivecure/admin-api/internal/service/analytics"
	appointmentService "github.com/thelivecure/admin-api/internal/service/appointment"
	authService "github.com/thelivecure/admin-api/internal/service/auth"
	blogService "github.com/thelivecure/admin-api/internal/service/blog"
	clinicService "github.com/thelivecure/admin-api/internal/service/clinic"
	doctorService "github.com/thelivecure/admin-api/internal/service/doctor"
	inquiryService "github.com/thelivecure/admin-api/internal/service/inquiry"
	invoiceService "github.com/thelivecure/admin-api/internal/service/invoice"
	notificationService "github.com/thelivecure/admin-api/internal/service/notification"
	searchService "github.com/thelivecure/admin-api/internal/service/search"
	settingsService "github.com/thelivecure/admin-api/internal/service/settings"
	statisticsService "github.com/thelivecure/admin-api/internal/service/statistics"
	storyService "github.com/thelivecure/admin-api/internal/service/story"
	treatmentService "github.com/thelivecure/admin-api/internal/service/treatment"
	"github.com/thelivecure/admin-api/internal/storage"
	pkgauth "github.com/thelivecure/admin-api/pkg/auth"
	"github.com/thelivecure/admin-api/pkg/logger"
	"github.com/thelivecure/admin-api/pkg/security"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, disconnect, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.Database.Name)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	// Repositories
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	doctorRepo := mongodb.NewDoctorRepository(db)
	clinicRepo := mongodb.NewClinicRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	storyRepo := mongodb.NewPatientStoryRepository(db)
	treatmentRepo := mongodb.NewTreatmentRepository(db)
	inquiryRepo := mongodb.NewContactInquiryRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)

	// Outbound integrations degrade to no-ops when unconfigured so the API
	// still runs locally.
	var mailer email.Service = email.NoopService{}
	if smtpCfg, err := email.LoadSMTPConfig(); err == nil {
		mailer = email.NewSMTPService(smtpCfg)
	} else {
		log.Warn().Err(err).Msg("smtp not configured, invoice email disabled")
	}

	var store storage.Service = storage.NoopService{}
	if ikCfg, err := storage.LoadImageKitConfig(); err == nil {
		store = storage.NewImageKitService(ikCfg)
	} else {
		log.Warn().Err(err).Msg("imagekit not configured, uploads disabled")
	}

	tokens := pkgauth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(0)

	// Services
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	invoiceSvc := invoiceService.NewService(invoiceRepo, appointmentRepo, mailer)
	doctorSvc := doctorService.NewService(doctorRepo)
	clinicSvc := clinicService.NewService(clinicRepo)
	blogSvc := blogService.NewService(blogRepo)
	storySvc := storyService.NewService(storyRepo)
	treatmentSvc := treatmentService.NewService(treatmentRepo)
	inquirySvc := inquiryService.NewService(inquiryRepo)
	notificationSvc := notificationService.NewService(notificationRepo)
	settingsSvc := settingsService.NewService(settingsRepo)
	authSvc := authService.NewService(userRepo, tokens, hasher)
	searchSvc := searchService.NewService(doctorRepo, clinicRepo, blogRepo, treatmentRepo, storyRepo, appointmentRepo)
	statisticsSvc := statisticsService.NewService(
		doctorRepo, clinicRepo, blogRepo, storyRepo,
		treatmentRepo, inquiryRepo, appointmentRepo, invoiceRepo,
	)
	analyticsSvc := analyticsService.NewService(analyticsRepo, appointmentRepo, userRepo, inquiryRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	handlers := router.Handlers{
		Appointment:  appointmenth.NewHandler(appointmentSvc),
		Invoice:      invoiceh.NewHandler(invoiceSvc),
		Doctor:       doctorh.NewHandler(doctorSvc),
		Clinic:       clinich.NewHandler(clinicSvc),
		Blog:         blogh.NewHandler(blogSvc),
		Story:        storyh.NewHandler(storySvc),
		Treatment:    treatmenth.NewHandler(treatmentSvc),
		Inquiry:      inquiryh.NewHandler(inquirySvc),
		Notification: notificationh.NewHandler(notificationSvc),
		Settings:     settingsh.NewHandler(settingsSvc),
		Search:       searchh.NewHandler(searchSvc),
		Statistics:   statisticsh.NewHandler(statisticsSvc),
		Analytics:    analyticsh.NewHandler(analyticsSvc),
		Auth:         authh.NewHandler(authSvc),
		Upload:       uploadh.NewHandler(store),
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	routerConfig := router.Config{
		Mode:           cfg.Server.Mode,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORS:           corsConfig,
		Version:        version,
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimitRPS = cfg.RateLimit.RPS
		routerConfig.RateLimitBurst = cfg.RateLimit.Burst
	}

	r := router.New(handlers, authMiddleware, db, routerConfig)
	r.Setup()

	scheduler := jobs.NewScheduler(invoiceSvc)
	if err := scheduler.Start(cfg.Jobs.OverdueSweepSchedule); err != nil {
		log.Fatal().Err(err).Msg("failed to start job scheduler")
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
