package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/delivery/consumer"
	"golang-stock-signal/internal/executor/repository"
	"golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/executor/strategy"
	"golang-stock-signal/pkg/common"
	"golang-stock-signal/pkg/logger"
	"golang-stock-signal/pkg/metrics"
	"golang-stock-signal/pkg/postgres"
	"golang-stock-signal/pkg/redis"
	"golang-stock-signal/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the execution service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Execution Service", zap.String("name", cfg.App.Name))

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	if err := redisClient.EnsureGroup(ctx, common.RedisStreamSignalTask, common.RedisStreamGroup); err != nil {
		appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
	}

	// Alert sink
	var notifier telegram.Notifier
	if cfg.Alert.Provider == "telegram" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	}
	alertRepo, err := repository.NewAlertRepository(cfg.Alert, notifier, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize alert repository", zap.Error(err))
	}

	// Initialize repositories
	priceRepo := repository.NewPriceRepository(db.DB)
	signalRepo := repository.NewSignalRepository(db.DB)
	signalRunRepo := repository.NewSignalRunRepository(db.DB)
	yahooFinanceRepo, err := repository.NewYahooFinanceRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", zap.Error(err))
	}

	registry, err := strategy.NewRegistry(cfg.Signal)
	if err != nil {
		appLogger.Fatal("Failed to build signal registry", zap.Error(err))
	}

	signalSvc := service.NewSignalService(cfg.Signal, priceRepo, signalRepo, signalRunRepo, alertRepo, registry, appLogger)
	ingestionSvc := service.NewIngestionService(cfg, yahooFinanceRepo, priceRepo, signalRepo, signalSvc, appLogger)

	strategies := []strategy.TaskExecutionStrategy{
		strategy.NewIngestAndRunStrategy(ingestionSvc, appLogger),
		strategy.NewRunTickerStrategy(signalSvc, appLogger),
	}

	executorSvc := service.NewExecutorService(redisClient.Client, cfg.Executor.RedisStreamBlock, appLogger, strategies)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	// Metrics endpoint
	var metricsServer *echo.Echo
	if cfg.Executor.MetricsPort > 0 {
		metricsServer = echo.New()
		metricsServer.HideBanner = true
		metricsServer.HidePort = true
		metrics.Register(metricsServer)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Executor.MetricsPort)
			if err := metricsServer.Start(addr); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Metrics server failed", logger.ErrorField(err))
			}
		}()
	}

	appLogger.Info("Execution service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down execution service...")
	cancel()
	redisConsumer.Stop()
	if metricsServer != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	appLogger.Info("Execution service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "execution-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-executor.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing execution-service CLI: %s\n", err)
		os.Exit(1)
	}
}
