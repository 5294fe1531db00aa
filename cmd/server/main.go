package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spellclash/spellclash-server/internal/auth"
	"github.com/spellclash/spellclash-server/internal/catalog"
	"github.com/spellclash/spellclash-server/internal/config"
	"github.com/spellclash/spellclash-server/internal/game"
	"github.com/spellclash/spellclash-server/internal/repository"
	"github.com/spellclash/spellclash-server/internal/server"
	"github.com/spellclash/spellclash-server/internal/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting spellclash server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// The catalog must be internally consistent before any match can run.
	cat, err := catalog.Default(logger)
	if err != nil {
		logger.Fatal("card catalog failed validation", zap.Error(err))
	}
	logger.Info("card catalog loaded", zap.Int("cards", len(cat.IDs())))

	// Deck persistence is optional; the server still serves matches with
	// starter decks when postgres is unreachable.
	var deckRepo *repository.DeckRepository
	db, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Warn("database unavailable; deck persistence disabled", zap.Error(err))
	} else {
		defer db.Close()
		deckRepo = repository.NewDeckRepository(db)
		logger.Info("deck repository initialized")
	}

	authStore := auth.NewStore(cfg.Auth.TokenTTL, logger)
	go func() {
		ticker := time.NewTicker(cfg.Auth.TokenTTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authStore.Sweep()
			}
		}
	}()

	rules := session.Rules{
		StartHealth:  cfg.Game.StartHealth,
		StartMana:    cfg.Game.StartMana,
		HandSize:     cfg.Game.HandSize,
		ManaPerRound: cfg.Game.ManaPerRound,
	}
	pacer := game.Pacer{
		Tick:    cfg.Pacing.Tick,
		Cast:    cfg.Pacing.Cast,
		Trigger: cfg.Pacing.Trigger,
	}

	hub := server.NewHub(logger)
	registry := session.NewRegistry(cat, rules, pacer, logger)
	srv := server.NewServer(hub, authStore, deckRepo, cat, registry, logger)

	logger.Info("spellclash server initialized",
		zap.String("address", cfg.Server.Address),
		zap.Duration("tick_pacing", cfg.Pacing.Tick),
	)

	if err := srv.Start(ctx, cfg.Server.Address); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("spellclash server stopped")
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
