package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dominionfree/dominion-server-go/internal/config"
	"github.com/dominionfree/dominion-server-go/internal/game"
	"github.com/dominionfree/dominion-server-go/internal/game/cards"
	"github.com/dominionfree/dominion-server-go/internal/repository"
	"github.com/dominionfree/dominion-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting dominion server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize database when a DSN is configured; the server runs fine
	// without persistence.
	var results *repository.ResultRepository
	if cfg.Database.DSN != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)
		results = repository.NewResultRepository(db)
	} else {
		logger.Info("no database configured; game results are not persisted")
	}

	// Initialize game manager with the full card catalog
	catalog := cards.All()
	manager := server.NewManager(catalog, cfg.Game, results, logger)
	if cfg.Server.ReplayDir != "" {
		manager.EnableReplays(game.NewReplayRecorder(logger, cfg.Server.ReplayDir))
		logger.Info("replay recording enabled", zap.String("dir", cfg.Server.ReplayDir))
	}
	logger.Info("game manager initialized",
		zap.Int("catalog_size", len(catalog)),
		zap.Int("min_players", cfg.Game.MinPlayers),
		zap.Int("max_players", cfg.Game.MaxPlayers),
	)

	// Start WebSocket gateway
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.StartWebSocketServer(ctx, cfg.Server.WebSocket, manager, logger)
	}()

	logger.Info("dominion server initialized",
		zap.String("version", version),
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
	)

	// Wait for termination signal or server failure
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			logger.Error("websocket gateway error", zap.Error(err))
		}
	}

	logger.Info("shutting down gracefully...")
	cancel()

	logger.Info("dominion server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
