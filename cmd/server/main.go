package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/domain/fiber/handler"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/usecase"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	setupLogger(appConfig)

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				return util.ErrorResponse(c, util.ErrorResponseFormat{
					Code:    e.Code,
					Message: e.Message,
				})
			}
			return util.HandleError(c, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := config.ConnectDB()
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	quotaConfig := config.LoadQuotaConfig()
	quota, err := repository.NewQuotaStore(ctx, quotaConfig, db, config.LoadRedisConfig().URL)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("quota ledger ready", "backend", quotaConfig.Backend, "limits", quotaConfig.Limits)

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}
	jobSearch := service.NewJobSearchService(config.LoadJSearchConfig())
	pages := service.NewPageFetcher()

	applicationRepo := repository.NewApplicationRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	analysisUC := usecase.NewAnalysisUsecase(quota, quotaConfig, gemini, analysisRepo, applicationRepo)
	ingestionUC := usecase.NewIngestionUsecase(pages, jobSearch)
	searchUC := usecase.NewSearchUsecase(quota, quotaConfig, jobSearch)
	briefUC := usecase.NewBriefUsecase(applicationRepo)

	api := app.Group("/api/v1", middleware.RequireAuth(config.LoadAuthConfig()))
	handler.NewAnalysisHandler(analysisUC).RegisterRoutes(api)
	handler.NewIngestHandler(ingestionUC).RegisterRoutes(api)
	handler.NewSearchHandler(searchUC).RegisterRoutes(api)
	handler.NewBriefHandler(briefUC).RegisterRoutes(api)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			slog.Debug("runtime stats", "goroutines", runtime.NumGoroutine())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server running", "port", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(appConfig *config.AppConfig) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if appConfig.IsProduction() {
		opts.Level = slog.LevelInfo
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
