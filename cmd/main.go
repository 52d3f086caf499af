package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"recommendation-service/internal/config"
	"recommendation-service/internal/database/postgres"
	"recommendation-service/internal/database/redis"
	"recommendation-service/internal/event"
	"recommendation-service/internal/handlers"
	"recommendation-service/internal/repository"
	"recommendation-service/internal/services"
	"recommendation-service/internal/worker"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/agrisa", "log", "recommendation_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	out := io.MultiWriter(os.Stdout, file)
	log.SetOutput(out)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	slog.Info("Connecting to PostgreSQL", "host", cfg.PostgresCfg.Host, "port", cfg.PostgresCfg.Port, "dbname", cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("error connect to database, retrying", "error", err)
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	var cache services.DashboardCache
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, dashboard cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		cache = repository.NewDashboardCache(redisClient.GetClient(), cfg.RecommendationCfg.CacheTTL)
	}

	var publisher services.EventPublisher = event.NoopPublisher{}
	var publisherHealth handlers.PublisherHealthReporter = event.NoopPublisher{}
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, events will not be published", "error", err)
	} else {
		defer rabbitConn.Close()
		recPublisher, err := event.NewRecommendationPublisher(rabbitConn)
		if err != nil {
			slog.Warn("Failed to prepare recommendation queues", "error", err)
		} else {
			publisher = recPublisher
			publisherHealth = recPublisher
		}
	}

	farmRepo := repository.NewFarmRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)

	recommendationService := services.NewRecommendationService(farmRepo, recommendationRepo, publisher, cache, cfg.RecommendationCfg.RandomSeed)
	advisoryService := services.NewAdvisoryService(farmRepo, recommendationRepo, cache)
	dashboardService := services.NewDashboardService(farmRepo, recommendationRepo, cache)

	manager := worker.NewWorkerManager()
	var pools []worker.Pool
	if cfg.RecommendationCfg.RefreshInterval > 0 {
		farmPool := worker.NewWorkingPool("farm-refresh", cfg.RecommendationCfg.NumWorkers, cfg.RecommendationCfg.QueueSize)
		// the fan-out blocks until every farm is queued, so it gets its own worker
		dispatchPool := worker.NewWorkingPool("refresh-dispatch", 1, 1)
		manager.StartPool(farmPool)
		manager.StartPool(dispatchPool)
		pools = append(pools, dispatchPool, farmPool)

		scheduler := worker.NewJobScheduler("recommendation-refresh", cfg.RecommendationCfg.RefreshInterval, dispatchPool)
		scheduler.AddJob(worker.NewFarmRefreshJob(farmRepo, recommendationService, farmPool))
		manager.StartScheduler(scheduler)
	} else {
		slog.Info("Scheduled recommendation refresh disabled")
	}

	app := fiber.New()
	handlers.NewHealthHandler(db, publisherHealth, pools...).Register(app)
	handlers.NewRecommendationHandler(recommendationService, advisoryService, dashboardService).Register(app)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	manager.Shutdown()
}
