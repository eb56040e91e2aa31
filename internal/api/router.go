package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/critiq/review-platform/docs"
	"github.com/critiq/review-platform/internal/api/handler"
	"github.com/critiq/review-platform/internal/api/middleware"
	"github.com/critiq/review-platform/internal/core/service"
	mongodb "github.com/critiq/review-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/critiq/review-platform/internal/infrastructure/db/redis"
	"github.com/critiq/review-platform/internal/infrastructure/email"
	"github.com/critiq/review-platform/internal/pkg/config"
)

// NewRouter builds the Echo instance with the full dependency graph and all
// routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reviews"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	genreRepo := mongodb.NewGenreRepository(db)
	titleRepo := mongodb.NewTitleRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	codeStore := redisdb.NewCodeStore(rdb, cfg.CodeTTL)
	codeSender := email.NewLogSender(log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, codeStore, codeSender, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	genreService := service.NewGenreService(genreRepo, log)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, log)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, commentRepo, log)
	commentService := service.NewCommentService(commentRepo, reviewRepo, titleRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	// --- Operational endpoints (no auth) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API v1 ---
	// Every route runs through the principal resolver; anonymous requests
	// pass through and are filtered per-operation by the policy checks.
	v1 := e.Group("/api/v1", middleware.Principal(cfg.JWTSecret))

	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/token", authHandler.Token)

	// "me" routes are registered before the :username wildcard so the
	// alias never resolves as a username.
	v1.GET("/users/me", userHandler.Me)
	v1.PATCH("/users/me", userHandler.UpdateMe)
	v1.GET("/users", userHandler.List)
	v1.POST("/users", userHandler.Create)
	v1.GET("/users/:username", userHandler.Get)
	v1.PATCH("/users/:username", userHandler.Update)
	v1.DELETE("/users/:username", userHandler.Delete)

	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create)
	v1.DELETE("/categories/:slug", categoryHandler.Delete)

	v1.GET("/genres", genreHandler.List)
	v1.POST("/genres", genreHandler.Create)
	v1.DELETE("/genres/:slug", genreHandler.Delete)

	v1.GET("/titles", titleHandler.List)
	v1.POST("/titles", titleHandler.Create)
	v1.GET("/titles/:title_id", titleHandler.Get)
	v1.PATCH("/titles/:title_id", titleHandler.Update)
	v1.DELETE("/titles/:title_id", titleHandler.Delete)

	reviews := v1.Group("/titles/:title_id/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.POST("", reviewHandler.Create)
	reviews.GET("/:review_id", reviewHandler.Get)
	reviews.PATCH("/:review_id", reviewHandler.Update)
	reviews.DELETE("/:review_id", reviewHandler.Delete)

	comments := v1.Group("/titles/:title_id/reviews/:review_id/comments")
	comments.GET("", commentHandler.List)
	comments.POST("", commentHandler.Create)
	comments.GET("/:comment_id", commentHandler.Get)
	comments.PATCH("/:comment_id", commentHandler.Update)
	comments.DELETE("/:comment_id", commentHandler.Delete)

	return e
}
