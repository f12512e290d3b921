// Package server wires the HTTP surface: routing, middleware, auth and the
// request handlers.
package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	_ "devlink/docs"
)

// Server holds the application's dependencies and implements the handlers.
type Server struct {
	cfg      *config.Config
	db       *gorm.DB
	users    repository.UserRepository
	profiles *service.ProfileService
	posts    *service.PostService
	github   *service.GithubService
}

// NewServer builds a Server from config: connects repositories and services
// to the given database handle.
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return &Server{
		cfg:      cfg,
		db:       db,
		users:    userRepo,
		profiles: service.NewProfileService(profileRepo, userRepo),
		posts:    service.NewPostService(postRepo, commentRepo, userRepo),
		github:   service.NewGithubService(cfg.GithubAPIURL, cfg.GithubToken),
	}
}

// NewServerWithDeps builds a Server with explicit dependencies. Tests use it
// to swap in mock repositories.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, users repository.UserRepository, profiles *service.ProfileService, posts *service.PostService, github *service.GithubService) *Server {
	return &Server{
		cfg:      cfg,
		db:       db,
		users:    users,
		profiles: profiles,
		posts:    posts,
		github:   github,
	}
}

// SetupMiddleware registers the global middleware stack. Order matters:
// recover first so panics never escape, then request identity, then
// observability, then protection.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	prom := middleware.InitMetrics("devlink-api")
	prom.RegisterAt(app, "/metrics")
	app.Use(middleware.MetricsMiddleware(prom))

	if s.cfg.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-auth-token",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return s.cfg.Env == "test" || s.cfg.Env == "development"
		},
	}))
}

// SetupRoutes registers every route on the app.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.handleHealth)
	app.Get("/health/live", s.handleHealth)
	app.Get("/health/ready", s.handleReady)
	app.Get("/monitor", monitor.New())
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", middleware.RateLimit(cache.GetClient(), 10, time.Minute, "register"), s.handleRegister)

	auth := api.Group("/auth")
	auth.Post("/", middleware.RateLimit(cache.GetClient(), 20, time.Minute, "login"), s.handleLogin)
	auth.Get("/", s.AuthRequired(), s.handleGetCurrentUser)

	profile := api.Group("/profile")
	profile.Get("/me", s.AuthRequired(), s.handleGetMyProfile)
	profile.Post("/", s.AuthRequired(), s.handleUpsertProfile)
	profile.Get("/", s.handleListProfiles)
	profile.Delete("/", s.AuthRequired(), s.handleDeleteAccount)
	profile.Get("/user/:userId", s.handleGetProfileByUser)
	profile.Put("/experience", s.AuthRequired(), s.handleAddExperience)
	profile.Delete("/experience/:id", s.AuthRequired(), s.handleDeleteExperience)
	profile.Put("/education", s.AuthRequired(), s.handleAddEducation)
	profile.Delete("/education/:id", s.AuthRequired(), s.handleDeleteEducation)
	profile.Get("/github/:username", s.handleGithubRepos)

	posts := api.Group("/posts", s.AuthRequired())
	posts.Post("/", middleware.RateLimit(cache.GetClient(), 30, time.Minute, "create_post"), s.handleCreatePost)
	posts.Get("/", s.handleListPosts)
	posts.Get("/:id", s.handleGetPost)
	posts.Delete("/:id", s.handleDeletePost)
	posts.Put("/like/:id", s.handleLikePost)
	posts.Put("/unlike/:id", s.handleUnlikePost)
	posts.Post("/comment/:id", middleware.RateLimit(cache.GetClient(), 30, time.Minute, "create_comment"), s.handleAddComment)
	posts.Delete("/comment/:id/:commentId", s.handleDeleteComment)
}

// AuthRequired returns middleware that authenticates the request via JWT.
// The token travels in the x-auth-token header; a Bearer Authorization header
// is accepted as a fallback for tooling.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get("x-auth-token")
		if tokenStr == "" {
			if authHeader := c.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenStr == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("No token, authorization denied"))
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, models.NewUnauthorizedError("Token is not valid"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthorizedError("Token is not valid"))
		}
		sub, err := claims.GetSubject()
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Token is not valid"))
		}
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Token is not valid"))
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// userID returns the authenticated user's ID set by AuthRequired.
func (s *Server) userID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleReady reports readiness: the database must answer a ping, Redis is
// reported but optional.
func (s *Server) handleReady(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	checks := fiber.Map{}
	healthy := true

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if rdb := cache.GetClient(); rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"status": checks})
}
