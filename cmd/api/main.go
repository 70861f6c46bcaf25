package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mealcoach/backend/config"
	"github.com/mealcoach/backend/internal/api"
	"github.com/mealcoach/backend/internal/database"
	"github.com/mealcoach/backend/internal/llm"
	"github.com/mealcoach/backend/internal/planner"
	"github.com/mealcoach/backend/internal/router"
	"github.com/mealcoach/backend/internal/server"
	"github.com/mealcoach/backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	ctx := context.Background()
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize S3", zap.Error(err))
	}

	chatClient, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel,
		logger.Named("llm"))
	if err != nil {
		logger.Fatal("failed to initialize chat client", zap.Error(err))
	}

	ingredients := planner.NewIngredientGenerator(chatClient, logger.Named("ingredients"),
		time.Now().UnixNano())
	orchestrator := planner.NewOrchestrator(chatClient, logger.Named("planner"), cfg.DebugDir)
	post := planner.NewPostProcessor(ingredients, logger.Named("postprocess"))

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	diaryService := service.NewDiaryService(db, s3cfg)
	imageService := service.NewImageService(cfg.OpenAIAPIKey, cfg.OpenAIImagesURL, s3cfg,
		logger.Named("images"))
	recService := service.NewRecommendationService(db)
	planService := service.NewPlanService(profileService, orchestrator, post, ingredients,
		imageService, recService, redisClient, logger.Named("plan"))

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService),
		api.NewDiaryHandler(diaryService),
		api.NewPlanHandler(planService),
		authService,
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
