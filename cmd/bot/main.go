package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/scrimhub/scrimbot/internal/config"
	"github.com/scrimhub/scrimbot/internal/database"
	"github.com/scrimhub/scrimbot/internal/gateway"
	"github.com/scrimhub/scrimbot/internal/handlers"
	"github.com/scrimhub/scrimbot/internal/metrics"
	"github.com/scrimhub/scrimbot/internal/repositories"
	"github.com/scrimhub/scrimbot/internal/scheduler"
	"github.com/scrimhub/scrimbot/internal/services"
	"github.com/scrimhub/scrimbot/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting scrimbot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Repositories
	playerRepo := repositories.NewPlayerRepository(db)
	queueRepo := repositories.NewQueueRepository(db)
	rcRepo := repositories.NewReadyCheckRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	vetoRepo := repositories.NewVetoRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	counterRepo := repositories.NewCounterRepository(db)
	cancelRepo := repositories.NewCancelRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db, cfg.ReadySeconds, cfg.VetoTurnSeconds, cfg.MapPool)

	// The platform adapter attaches here; the logging stub keeps the core
	// operational without one.
	gw := gateway.NewLogging()
	timers := scheduler.NewTimerSet()

	// Services
	boards := services.NewBoardsService(playerRepo, matchRepo, cancelRepo, gw)
	matches := services.NewMatchService(cfg, matchRepo, playerRepo, queueRepo, vetoRepo,
		historyRepo, counterRepo, settingsRepo, boards, timers, gw, gw, gw)
	readyChecks := services.NewReadyCheckService(rcRepo, queueRepo, playerRepo, cancelRepo,
		settingsRepo, matches, boards, timers, gw, gw)
	queue := services.NewQueueService(cfg, queueRepo, playerRepo, matchRepo, settingsRepo,
		readyChecks, matches, gw)
	readyChecks.SetRequeue(queue)
	admin := services.NewAdminService(cfg, playerRepo, queueRepo, matchRepo, cancelRepo,
		vetoRepo, settingsRepo, queue, boards)

	// The platform adapter dispatches inbound interactions through the
	// handler manager; with only the logging gateway attached nothing
	// delivers them, but the wiring stays ready for an adapter.
	_ = handlers.NewHandlerManager(cfg, queue, readyChecks, matches, admin, boards)

	// Startup recovery: timers died with the previous process, so the queue
	// is re-evaluated and the boards recreated. Pending entities from a
	// crash wait for manual clearing.
	queue.RefreshPanel()
	boards.RefreshLeaderboard()
	boards.RefreshCancelBoard()
	if err := queue.Trigger(); err != nil {
		logger.Error("startup queue trigger failed", "error", err)
	}

	// Metrics listener
	metricsSrv := metrics.Serve(":" + cfg.MetricsPort)

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	timers.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(ctx); err != nil {
		logger.Error("metrics shutdown failed", "error", err)
	}

	logger.Info("Bot stopped")
}
