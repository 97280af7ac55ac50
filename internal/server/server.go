// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"mayz/internal/auth"
	"mayz/internal/cache"
	"mayz/internal/config"
	"mayz/internal/database"
	"mayz/internal/middleware"
	"mayz/internal/repository"
	"mayz/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	gate *auth.Gate

	userRepo repository.UserRepository
	mayRepo  repository.MayRepository
	voteRepo repository.VoteRepository

	userService *service.UserService
	mayService  *service.MayService
	voteService *service.VoteService
}

// NewServer creates a server instance, establishing its own database and
// Redis connections from the config.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
// The injected Redis client becomes the cache backend as well, so entity
// caching and rate limiting always share one connection.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	cache.SetClient(redisClient)

	userRepo := repository.NewUserRepository(db)
	mayRepo := repository.NewMayRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("mayz-api"),
		userRepo:       userRepo,
		mayRepo:        mayRepo,
		voteRepo:       voteRepo,
	}

	s.userService = service.NewUserService(userRepo)
	s.mayService = service.NewMayService(mayRepo)
	s.voteService = service.NewVoteService(voteRepo, mayRepo)
	s.gate = auth.NewGate(cfg, userRepo)

	return s, nil
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	protected := []fiber.Handler{s.gate.Required, s.ActiveRequired}

	// Auth
	app.Post("/login", middleware.RateLimiter(s.redis, middleware.RateLimitConfig{
		Max: 10, Window: 5 * time.Minute, KeyPrefix: "ratelimit:login",
	}), s.Login)
	app.Get("/login/me", append(protected, s.Me)...)

	// Users. Signup is the only public user route.
	users := app.Group("/user")
	users.Post("/", middleware.RateLimiter(s.redis, middleware.RateLimitConfig{
		Max: 3, Window: 10 * time.Minute, KeyPrefix: "ratelimit:signup",
	}), s.Signup)
	users.Get("/", append(protected, s.GetUsers)...)
	// Specific routes before the generic /:id.
	users.Get("/latest", append(protected, s.GetLatestUser)...)
	users.Get("/:id", append(protected, s.GetUser)...)
	users.Put("/:id", append(protected, s.UpdateUser)...)
	users.Delete("/:id", append(protected, s.DeleteUser)...)

	// Mayz
	mayz := app.Group("/may", protected...)
	mayz.Post("/", s.CreateMay)
	mayz.Get("/", s.GetMayz)
	mayz.Get("/me", s.GetMyMayz)
	mayz.Get("/latest", s.GetLatestMay)
	mayz.Get("/:id", s.GetMay)
	mayz.Put("/:id", s.UpdateMay)
	mayz.Delete("/:id", s.DeleteMay)

	// Votes
	votes := app.Group("/vote", protected...)
	votes.Get("/", s.GetVotes)
	votes.Post("/:mayId", s.CastVote)
	votes.Delete("/:mayId", s.RemoveVote)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the backing stores are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "disabled"
	}

	status := fiber.StatusOK
	overall := "ready"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "not ready"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}

// Shutdown releases the server's backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.WarnContext(ctx, "error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.WarnContext(ctx, "error closing redis", "error", rerr)
		}
	}

	return nil
}
