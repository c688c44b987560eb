package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/nutrition5k/nutrition-api/docs"
	"github.com/nutrition5k/nutrition-api/internal/api/handler"
	"github.com/nutrition5k/nutrition-api/internal/api/middleware"
	"github.com/nutrition5k/nutrition-api/internal/core/service"
	"github.com/nutrition5k/nutrition-api/internal/infrastructure/config"
	mongodb "github.com/nutrition5k/nutrition-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nutrition5k/nutrition-api/internal/infrastructure/db/redis"
	"github.com/nutrition5k/nutrition-api/internal/infrastructure/model"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("20M"))
	e.Use(echoprometheus.NewMiddleware("nutrition"))

	limiter := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	e.Use(middleware.RateLimit(limiter, log))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	predictionRepo := mongodb.NewPredictionRepository(db)
	modelClient := model.NewClient(model.Config{
		BaseURL: cfg.Model.URL,
		Timeout: cfg.Model.Timeout(),
	}, log)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	predictionService := service.NewPredictionService(modelClient, predictionRepo, log)
	historyService := service.NewHistoryService(predictionRepo)

	authHandler := handler.NewAuthHandler(authService)
	predictionHandler := handler.NewPredictionHandler(predictionService)
	historyHandler := handler.NewHistoryHandler(historyService)

	requireAuth := middleware.Auth(tokenService)
	optionalAuth := middleware.OptionalAuth(tokenService)

	// --- Service banner ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message":   "Nutrition API Server",
			"version":   "1.0.0",
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Prediction routes ---
	e.POST("/prediction/macronutrients", predictionHandler.PredictMacronutrients, requireAuth)
	e.GET("/prediction/health", predictionHandler.Health)

	// --- History (anonymous callers see an empty list) ---
	e.GET("/history", historyHandler.Get, optionalAuth)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
