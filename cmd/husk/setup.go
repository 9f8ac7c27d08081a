package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/huskbot/internal/config"
	"github.com/sandevgo/huskbot/internal/service/command"
	"github.com/sandevgo/huskbot/internal/service/dispatch"
	"github.com/sandevgo/huskbot/internal/storage/sqlite"
	"github.com/sandevgo/huskbot/internal/transport/telegram"
	"github.com/sandevgo/huskbot/pkg/log"
	"github.com/sandevgo/huskbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	users := sqlite.NewUsersRepo(db)

	// 3. Command registry and dispatcher
	registry := dispatch.NewRegistry()
	if err := command.RegisterAll(registry, users); err != nil {
		logger.Fatal().Err(err).Msg("failed to register built-in commands")
	}
	dispatcher := dispatch.NewDispatcher(registry)

	// 4. Transport
	if appCfg.IsTelegramEnabled() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, dispatcher, users)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	} else {
		logger.Warn().Msg("no transport enabled, nothing will be dispatched")
	}

	return services
}

// initEnv loads the runtime .env file if one exists; real environment
// variables still win.
func initEnv(ctx context.Context, runtimePath string) error {
	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
	}
	return nil
}
