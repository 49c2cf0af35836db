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

	executorrepository "golang-stock-signal/internal/executor/repository"
	executorservice "golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/executor/strategy"
	"golang-stock-signal/internal/scheduler/config"
	delivery "golang-stock-signal/internal/scheduler/delivery/http"
	_ "golang-stock-signal/internal/scheduler/docs"
	"golang-stock-signal/internal/scheduler/repository"
	"golang-stock-signal/internal/scheduler/service"
	"golang-stock-signal/pkg/logger"
	"golang-stock-signal/pkg/metrics"
	"golang-stock-signal/pkg/postgres"
	"golang-stock-signal/pkg/redis"
	"golang-stock-signal/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scheduling service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	appLogger.Info("Starting Scheduling Service", logger.Field("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
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
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Alert sink used by the synchronous runs
	var notifier telegram.Notifier
	if cfg.Alert.Provider == "telegram" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}
	alertRepo, err := executorrepository.NewAlertRepository(cfg.Alert, notifier, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize alert repository", logger.ErrorField(err))
	}

	// Initialize repositories
	priceRepo := executorrepository.NewPriceRepository(db.DB)
	signalRepo := executorrepository.NewSignalRepository(db.DB)
	signalRunRepo := executorrepository.NewSignalRunRepository(db.DB)
	signalQueryRepo := repository.NewSignalQueryRepository(db.DB)
	runHistoryRepo := repository.NewSignalRunRepository(db.DB)

	registry, err := strategy.NewRegistry(cfg.Signal)
	if err != nil {
		appLogger.Fatal("Failed to build signal registry", logger.ErrorField(err))
	}

	// Initialize services
	signalSvc := executorservice.NewSignalService(cfg.Signal, priceRepo, signalRepo, signalRunRepo, alertRepo, registry, appLogger)
	backtestSvc := executorservice.NewBacktestService(priceRepo)
	querySvc := service.NewSignalQueryService(signalQueryRepo, priceRepo, cfg.Cache.PriceTTL, cfg.Cache.CleanupInterval, appLogger)
	runHistorySvc := service.NewRunHistoryService(runHistoryRepo, appLogger)
	schedulerSvc := service.NewSchedulerService(redisClient.Client, cfg, appLogger)

	// Start scheduler service
	if cfg.Scheduler.Enabled {
		go func() {
			if err := schedulerSvc.Start(ctx); err != nil {
				appLogger.Error("Scheduler failed to start", logger.ErrorField(err))
				stop()
			}
		}()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	signalHandler := delivery.NewSignalHandler(querySvc, signalSvc, cfg.Ingestion.Tickers, appLogger)
	signalHandler.RegisterRoutes(apiV1.Group("/signals"))

	priceHandler := delivery.NewPriceHandler(querySvc, backtestSvc, appLogger)
	priceHandler.RegisterRoutes(apiV1.Group("/prices"))
	priceHandler.RegisterBacktestRoutes(apiV1.Group("/backtest"))

	runHandler := delivery.NewRunHandler(runHistorySvc, appLogger)
	runHandler.RegisterRoutes(apiV1.Group("/runs"))

	ingestHandler := delivery.NewIngestHandler(schedulerSvc, appLogger)
	ingestHandler.RegisterRoutes(apiV1.Group("/ingest"))

	e.GET("/swagger/*", swagger.WrapHandler)
	metrics.Register(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Signal API
// @version 1.0
// @description Signal engine, price history and run history of the stock signal service.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scheduling-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scheduler.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scheduling-service CLI: %s\n", err)
		os.Exit(1)
	}
}
