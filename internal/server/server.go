// Package server contains the HTTP handlers for the Children.lk API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "childrenlk/docs" // swagger docs
	"childrenlk/internal/bootstrap"
	"childrenlk/internal/config"
	"childrenlk/internal/mailer"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/notifications"
	"childrenlk/internal/repository"
	"childrenlk/internal/service"
	"childrenlk/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the external collaborators the server talks to besides the
// database and Redis.
type Deps struct {
	MediaHost storage.MediaHost
	Mailer    mailer.Mailer
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownTracer func(context.Context) error

	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	notifier *notifications.Notifier

	authService         *service.AuthService
	submissionService   *service.SubmissionService
	reviewService       *service.ReviewService
	catalogService      *service.CatalogService
	organizerService    *service.OrganizerService
	uploadService       *service.UploadService
	downloadService     *service.DownloadService
	announcementService *service.AnnouncementService
	statsService        *service.StatsService
	tagService          *service.TagService
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s, err := NewServerWithDeps(cfg, rt.DB, rt.Redis, Deps{MediaHost: rt.MediaHost, Mailer: rt.Mailer})
	if err != nil {
		return nil, err
	}
	s.shutdownTracer = rt.ShutdownTracer
	return s, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use it with sqlite and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, deps Deps) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("config and database are required")
	}
	if deps.MediaHost == nil || deps.Mailer == nil {
		return nil, fmt.Errorf("media host and mailer are required")
	}

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	publishedRepo := repository.NewPublishedRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("childrenlk-api"),
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		notifier:       notifications.NewNotifier(redisClient),
	}

	s.tagService = service.NewTagService(repository.NewTagRepository(db), redisClient)
	s.authService = service.NewAuthService(userRepo, orgRepo, deps.Mailer, time.Duration(cfg.OTPTTLMinutes)*time.Minute)
	s.submissionService = service.NewSubmissionService(requestRepo, s.tagService)
	s.reviewService = service.NewReviewService(requestRepo, orgRepo, s.notifier)
	s.catalogService = service.NewCatalogService(publishedRepo)
	s.organizerService = service.NewOrganizerService(orgRepo, deps.Mailer, cfg.FrontendBaseURL)
	s.uploadService = service.NewUploadService(deps.MediaHost)
	s.downloadService = service.NewDownloadService(publishedRepo, downloadRepo)
	s.announcementService = service.NewAnnouncementService(repository.NewAnnouncementRepository(db))
	s.statsService = service.NewStatsService(requestRepo, publishedRepo, orgRepo, userRepo, downloadRepo)

	return s, nil
}

// NewApp builds the fiber app with the server's error handler and body limit.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "Children.lk API",
		BodyLimit:    s.config.BodyLimitMB * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/forgot-password", middleware.RateLimit(s.redis, 3, 15*time.Minute, "forgot_password"), s.ForgotPassword)
	auth.Post("/reset-password", middleware.RateLimit(s.redis, 5, 15*time.Minute, "reset_password"), s.ResetPassword)
	auth.Post("/logout", s.AuthRequired(), s.Logout)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public catalog
	public := api.Group("/public")
	public.Post("/resources/download", middleware.RateLimit(s.redis, 60, time.Minute, "download"), s.RecordDownload)
	public.Get("/announcements", s.ListAnnouncements)
	for _, kind := range models.RequestKinds {
		public.Get("/"+kind.Plural(), s.ListPublished(kind))
		public.Get("/"+kind.Plural()+"/:id", s.GetPublished(kind))
	}
	api.Get("/tags", s.SuggestTags)

	protected := api.Group("", s.AuthRequired())
	protected.Post("/upload", middleware.RateLimit(s.redis, 30, time.Minute, "upload"), s.Upload)

	// Organizer
	organizer := protected.Group("/organizer", s.RequireRole(models.RoleOrganizer))
	organizer.Get("/organization", s.GetOwnOrganization)
	organizer.Put("/organization", s.UpdateOwnOrganization)
	organizer.Get("/stats", s.OrganizerStats)
	for _, kind := range models.RequestKinds {
		group := organizer.Group("/" + string(kind) + "-requests")
		group.Get("/", s.ListRequests(kind))
		group.Post("/", middleware.RateLimit(s.redis, 20, time.Minute, "submit_"+string(kind)), s.SubmitRequest(kind))
		group.Get("/:id", s.GetRequest(kind))
	}

	// Admin
	admin := protected.Group("/admin", s.RequireRole(models.RoleAdmin))
	admin.Get("/stats", s.AdminStats)
	admin.Post("/organizers", s.OnboardOrganizer)
	admin.Get("/organizations", s.ListOrganizations)
	admin.Get("/organizations/:id", s.GetOrganization)
	admin.Get("/resources/:id/downloads", s.ResourceDownloads)
	admin.Delete("/super-heroes/:id", s.DeletePublished(models.KindSuperHero))
	admin.Post("/announcements", s.CreateAnnouncement)
	admin.Delete("/announcements/:id", s.DeleteAnnouncement)
	admin.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Children.lk API Metrics",
	}))
	for _, kind := range models.RequestKinds {
		group := admin.Group("/" + string(kind) + "-requests")
		group.Get("/", s.ListRequests(kind))
		group.Get("/:id", s.GetRequest(kind))
		group.Patch("/:id", s.ReviewRequest(kind))
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.shutdownTracer != nil {
		if err := s.shutdownTracer(ctx); err != nil {
			middleware.Logger.Error("error flushing traces", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
