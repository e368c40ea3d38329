// Package server contains the HTTP handlers binding the portal's access
// layer to Fiber routes. Handlers decode requests, gate on the persisted
// session's role, and delegate; no business logic lives here.
package server

import (
	"context"
	"fmt"

	"placement/internal/config"
	"placement/internal/middleware"
	"placement/internal/models"
	"placement/internal/service"
	"placement/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          store.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	authService        *service.AuthService
	userService        *service.UserService
	jobService         *service.JobService
	applicationService *service.ApplicationService
	resumeService      *service.ResumeService
}

// NewServer creates a server instance, opening the store backend named in
// the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		st, err = store.NewFileStore(cfg.DataDir)
	case config.StoreBackendRedis:
		st, err = store.NewRedisStore(context.Background(), cfg.RedisURL)
	case config.StoreBackendMemory:
		st = store.NewMemoryStore()
	default:
		err = fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("store initialization failed: %w", err)
	}

	return NewServerWithDeps(cfg, st), nil
}

// NewServerWithDeps creates a Server over an already-initialized store.
// Tests use this with the in-memory store.
func NewServerWithDeps(cfg *config.Config, st store.Store) *Server {
	deps := service.NewDeps(st)

	return &Server{
		config:             cfg,
		store:              st,
		promMiddleware:     fiberprometheus.New("placement-api"),
		authService:        service.NewAuthService(deps),
		userService:        service.NewUserService(deps),
		jobService:         service.NewJobService(deps),
		applicationService: service.NewApplicationService(deps),
		resumeService:      service.NewResumeService(cfg),
	}
}

// SetupMiddleware installs the middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and session user ID
	app.Use(middleware.ContextMiddleware())

	// Tracing (before the structured logger so traceID is in locals)
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes registers every route.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Placement Portal Metrics Dashboard",
	}))

	// Uploaded resumes are served back from disk under their content address.
	app.Static("/uploads/resumes", s.resumeService.UploadDir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.Me)

	// Everything below requires a session.
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Get("/", s.AdminRequired(), s.ListUsers)
	users.Get("/students", s.ListStudents)
	users.Get("/companies", s.ListCompanies)
	users.Put("/me", s.UpdateMyProfile)
	users.Put("/:id/active", s.AdminRequired(), s.SetUserActive)
	users.Delete("/:id", s.AdminRequired(), s.DeleteUser)

	jobs := protected.Group("/jobs")
	jobs.Get("/", s.ListJobs)
	jobs.Get("/mine", s.ListMyJobs)
	jobs.Get("/:id", s.GetJob)
	jobs.Post("/", s.CreateJob)
	jobs.Put("/:id", s.UpdateJob)
	jobs.Delete("/:id", s.DeleteJob)

	apps := protected.Group("/applications")
	apps.Get("/", s.ListApplications)
	apps.Get("/mine", s.ListMyApplications)
	apps.Get("/job/:jobId", s.ListJobApplications)
	apps.Post("/", s.CreateApplication)
	apps.Put("/:id/status", s.UpdateApplicationStatus)

	protected.Post("/resume", s.UploadResume)
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	// The store is the only dependency worth probing.
	if _, _, err := s.store.Get(c.UserContext(), store.KeyUsers); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// AuthRequired loads the persisted session and rejects the request when none
// exists. The session user is stashed in locals for handlers and logging.
//
// The portal keeps a single-session model: there are no tokens, just the one
// stored session record.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.authService.CurrentUser(c.UserContext())
		if err != nil {
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		}
		if user == nil {
			unauthorized := models.NewUnauthorizedError("Login required")
			return models.RespondWithError(c, fiber.StatusUnauthorized, unauthorized)
		}
		c.Locals("userID", user.ID)
		c.Locals("sessionUser", user)
		return c.Next()
	}
}

// AdminRequired gates a route to admin sessions. Must run after AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := s.sessionUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			forbidden := models.NewForbiddenError("Admin access required")
			return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
		}
		return c.Next()
	}
}

// sessionUser returns the user stashed by AuthRequired, or nil.
func (s *Server) sessionUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("sessionUser").(*models.User); ok {
		return user
	}
	return nil
}

// Shutdown releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	return s.store.Close()
}
