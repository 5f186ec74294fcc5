// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	_ "medialane/docs" // swagger docs
	"medialane/internal/auth"
	"medialane/internal/bootstrap"
	"medialane/internal/config"
	"medialane/internal/featureflags"
	"medialane/internal/middleware"
	"medialane/internal/models"
	"medialane/internal/notifications"
	"medialane/internal/repository"
	"medialane/internal/service"

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

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenManager
	userRepo       repository.UserRepository
	featureFlags   *featureflags.Manager
	notifier       *notifications.Notifier

	articleService   *service.ArticleService
	videoService     *service.VideoService
	commentService   *service.CommentService
	reactionService  *service.ReactionService
	shareService     *service.ShareService
	rateService      *service.RateService
	playlistService  *service.PlaylistService
	promotionService *service.PromotionService
	userService      *service.UserService
	feedService      *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedCatalog: true})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)
	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	articles := service.NewArticleService(repository.NewArticleRepository(db), flags)
	videos := service.NewVideoService(repository.NewVideoRepository(db), repository.NewCategoryRepository(db), flags)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("medialane-api"),
		tokens:         tokens,
		userRepo:       userRepo,
		featureFlags:   flags,
		notifier:       notifications.NewNotifier(redisClient),

		articleService:   articles,
		videoService:     videos,
		commentService:   service.NewCommentService(repository.NewCommentRepository(db), articles),
		reactionService:  service.NewReactionService(repository.NewLikeRepository(db), repository.NewBookmarkRepository(db), articles),
		shareService:     service.NewShareService(repository.NewShareRepository(db), videos),
		rateService:      service.NewRateService(repository.NewRateRepository(db), videos),
		playlistService:  service.NewPlaylistService(repository.NewPlaylistRepository(db), videos),
		promotionService: service.NewPromotionService(repository.NewPromotionRepository(db)),
		userService:      service.NewUserService(userRepo, tokens),
		feedService:      service.NewFeedService(articles, videos),
	}, nil
}

// NewApp returns a Fiber app with the API error handler installed.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "Medialane API",
		BodyLimit: 4 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, &models.AppError{
					Status:  fe.Code,
					Code:    fmt.Sprintf("HTTP_%d", fe.Code),
					Message: fe.Message,
				})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, err)
		},
	})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so error responses still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.ConfirmPasswordHeader,
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, &models.AppError{
				Status:  fiber.StatusTooManyRequests,
				Code:    middleware.CodeRateLimited,
				Message: "Too many requests, please try again later",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Medialane Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	authRequired := middleware.AuthRequired(s.tokens, s.userRepo)
	optionalAuth := middleware.OptionalAuth(s.tokens, s.userRepo)
	client := middleware.ClientRequired()
	admin := middleware.AdminRequired()
	confirm := middleware.PasswordConfirmRequired()

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	authGroup.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Post("/logout", authRequired, s.Logout)
	authGroup.Get("/me", authRequired, s.GetMe)
	authGroup.Put("/me", authRequired, s.UpdateMe)
	authGroup.Put("/me/password", authRequired, s.ChangePassword)

	// Videos: fixed segments before /:slug
	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Get("/categories", s.GetVideoCategories)
	videos.Get("/me", authRequired, client, s.GetMyVideos)
	videos.Get("/:slug", optionalAuth, s.GetVideo)
	videos.Post("/", authRequired, middleware.ClientRequired(models.RoleVideoClient), s.CreateVideo)
	videos.Put("/:slug", authRequired, client, s.UpdateVideo)
	videos.Delete("/:slug", authRequired, s.DeleteVideo)

	// Articles
	articles := api.Group("/articles")
	articles.Get("/", s.GetArticles)
	articles.Get("/tags", s.GetArticleTags)
	articles.Get("/featured", s.GetFeaturedArticles)
	articles.Get("/me", authRequired, client, s.GetMyArticles)
	articles.Get("/:slug", optionalAuth, s.GetArticle)
	articles.Post("/", authRequired, client,
		middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_article"), s.CreateArticle)
	articles.Put("/:slug", authRequired, client, s.UpdateArticle)
	articles.Delete("/:slug", authRequired, s.DeleteArticle)

	// Comments are keyed by article slug for reads and creates, by id otherwise
	comments := api.Group("/comments")
	comments.Get("/:slug", s.GetComments)
	comments.Post("/:slug", authRequired, client,
		middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comments.Put("/:id", authRequired, s.UpdateComment)
	comments.Delete("/:id", authRequired, s.DeleteComment)

	// Likes and bookmarks
	likes := api.Group("/likes", authRequired, client)
	likes.Get("/me", s.GetMyLikes)
	likes.Post("/:slug", s.LikeArticle)
	likes.Delete("/:slug", s.UnlikeArticle)

	bookmarks := api.Group("/bookmarks", authRequired, client)
	bookmarks.Get("/me", s.GetMyBookmarks)
	bookmarks.Post("/:slug", s.BookmarkArticle)
	bookmarks.Delete("/:slug", s.UnbookmarkArticle)

	// Rates accept anonymous raters
	rates := api.Group("/rates", optionalAuth)
	rates.Get("/:slug", s.GetRate)
	rates.Post("/:slug", middleware.RateLimit(s.redis, 20, time.Minute, "rate"), s.RateVideo)

	shares := api.Group("/shares", authRequired, client)
	shares.Get("/me", s.GetMyShares)
	shares.Post("/:slug", s.ShareVideo)

	playlists := api.Group("/playlists", authRequired, client)
	playlists.Post("/", s.AddToPlaylist)
	playlists.Get("/me", s.GetMyPlaylists)
	playlists.Get("/me/:slug", s.GetMyPlaylist)
	playlists.Delete("/:slug/videos/:videoSlug", s.RemoveFromPlaylist)
	playlists.Delete("/:slug", s.DeletePlaylist)

	// Promotions
	promotions := api.Group("/promotions")
	promotions.Get("/plans/ads", s.GetAdsPlans)
	promotions.Get("/plans/stories", s.GetStoryPlans)
	promotions.Get("/ads", s.GetLiveAds)
	promotions.Get("/stories", s.GetLiveStories)
	adsClient := middleware.ClientRequired(models.RoleAdsClient)
	promotions.Get("/me", authRequired, adsClient, s.GetMyPromotions)
	promotions.Post("/ads", authRequired, adsClient, s.CreateAds)
	promotions.Post("/stories", authRequired, adsClient, s.CreateStory)

	// Mixed content
	contents := api.Group("/contents")
	contents.Get("/", middleware.RateLimit(s.redis, 30, time.Minute, "search"), s.SearchContents)
	contents.Get("/trending", s.GetTrending)

	// Admin routes
	api.Post("/admin/auth/login", middleware.RateLimit(s.redis, 5, 5*time.Minute, "admin_login"), s.AdminLogin)

	adminGroup := api.Group("/admin", authRequired, admin)
	adminGroup.Get("/feature-flags", s.GetFeatureFlags)

	adminUsers := adminGroup.Group("/users")
	adminUsers.Get("/", s.AdminListUsers)
	adminUsers.Get("/:id", s.AdminGetUser)
	adminUsers.Post("/", middleware.SuperAdminRequired(), s.AdminCreateUser)
	adminUsers.Put("/:id/block", middleware.SuperAdminRequired(), confirm, s.AdminBlockUser)
	adminUsers.Put("/:id/unblock", middleware.SuperAdminRequired(), confirm, s.AdminUnblockUser)
	adminUsers.Delete("/:id", middleware.SuperAdminRequired(), confirm, s.AdminDeleteUser)

	adminVideos := adminGroup.Group("/videos")
	adminVideos.Get("/", s.AdminListVideos)
	adminVideos.Put("/:id/approve", s.AdminApproveVideo)
	adminVideos.Put("/:id/disable", confirm, s.AdminDisableVideo)
	adminVideos.Delete("/:id", confirm, s.AdminDeleteVideo)

	adminArticles := adminGroup.Group("/articles")
	adminArticles.Get("/", s.AdminListArticles)
	adminArticles.Put("/:id/approve", s.AdminApproveArticle)
	adminArticles.Put("/:id/disable", confirm, s.AdminDisableArticle)
	adminArticles.Put("/:id/feature", s.AdminFeatureArticle)
	adminArticles.Put("/:id/unfeature", s.AdminUnfeatureArticle)

	adminPromotions := adminGroup.Group("/promotions")
	adminPromotions.Post("/plans/ads", s.AdminCreateAdsPlan)
	adminPromotions.Post("/plans/stories", s.AdminCreateStoryPlan)
	adminPromotions.Put("/:kind/:id/enable", confirm, s.AdminEnablePromotion)
	adminPromotions.Put("/:kind/:id/disable", confirm, s.AdminDisablePromotion)
	adminPromotions.Delete("/:kind/:id", confirm, s.AdminDeletePromotion)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: the
// cache and route limits degrade to pass-through without it.
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

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
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

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
