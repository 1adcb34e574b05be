// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"orbit/internal/cache"
	"orbit/internal/config"
	"orbit/internal/database"
	"orbit/internal/middleware"
	"orbit/internal/models"
	"orbit/internal/repository"
	"orbit/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	accountRepo    repository.AccountRepository
	profileRepo    repository.ProfileRepository
	friendshipRepo repository.FriendshipRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository

	accountService *service.AccountService
	profileService *service.ProfileService
	friendService  *service.FriendService
	postService    *service.PostService
	commentService *service.CommentService
	mediaService   *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	prom := middleware.InitMetrics("orbit-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		friendshipRepo: friendshipRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
	server.accountService = service.NewAccountService(userRepo, accountRepo, profileRepo)
	server.profileService = service.NewProfileService(userRepo, profileRepo, friendshipRepo, postRepo)
	server.friendService = service.NewFriendService(friendshipRepo)
	server.postService = service.NewPostService(postRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.mediaService = service.NewMediaService(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing spans per request
	app.Use(middleware.TracingMiddleware())

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

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded media
	app.Static("/images", s.mediaService.ImagesDir())
	app.Static("/files", s.mediaService.FilesDir())

	authRequired := middleware.AuthRequired(s.config, s.redis)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", authRequired, s.GetMe)
	auth.Put("/edit_informations", authRequired, s.EditInformations)
	auth.Put("/edit_bio", authRequired, s.EditBio)
	auth.Get("/change_account_privacy", authRequired, s.ChangeAccountPrivacy)
	auth.Get("/logout", authRequired, s.Logout)
	auth.Delete("/delete", authRequired, s.DeleteAccount)

	// Profile routes. Photos and the profile image name are public; the
	// aggregated view and posts need a session.
	profile := api.Group("/profile")
	profile.Get("/:profile_id/posts", authRequired, s.GetProfilePosts)
	profile.Get("/:profile_id/photos", s.GetProfilePhotos)
	profile.Get("/:profile_id/profile_image", s.GetProfileImage)
	profile.Get("/:profile_id", authRequired, s.GetProfile)

	// Post routes. Reading a post's comments is public.
	post := api.Group("/post")
	post.Post("/", authRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	post.Get("/feed/posts", authRequired, s.GetFeedPosts)
	post.Put("/like/:post_id", authRequired, s.LikePost)
	post.Put("/undolike/:post_id", authRequired, s.UnlikePost)
	post.Put("/edit/:post_id", authRequired, s.EditPost)
	post.Delete("/delete/:post_id", authRequired, s.DeletePost)
	post.Post("/:post_id/comments", authRequired, middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	post.Get("/:post_id/comments", s.GetPostComments)

	// Friendship routes
	friendship := api.Group("/friendship", authRequired)
	friendship.Post("/:user_id", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "friend_add"), s.AddFriend)

	// Upload routes
	upload := api.Group("/upload", authRequired)
	upload.Post("/profile_image", s.UploadProfileImage)
	upload.Post("/cover_image", s.UploadCoverImage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// generateToken creates the session JWT for the given user.
func (s *Server) generateToken(userID uint, name string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"name": name,
		"iss":  "orbit-api",
		"exp":  now.Add(time.Duration(s.config.JWTExpireHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// setAccessCookie attaches the session token as the HTTP-only auth cookie.
func (s *Server) setAccessCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(s.config.CookieExpireHours) * time.Hour),
		HTTPOnly: true,
		Secure:   s.config.Env != "development" && s.config.Env != "test",
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Orbit API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
