package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/strandworks/lumibot/internal/config"
	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/engine"
	"github.com/strandworks/lumibot/internal/storage/sqlite"
	"github.com/strandworks/lumibot/internal/transport/telegram"
	"github.com/strandworks/lumibot/pkg/log"
	"github.com/strandworks/lumibot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	quizCfg := config.NewQuizConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	contacts := sqlite.NewContactsRepo(db)

	// 3. Content catalog and question bank
	catalog := content.NewCatalog(appCfg.GetTextsPath(), appCfg.GetFilesPath())
	if err := catalog.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load content catalog")
	}

	bank, err := content.LoadQuestions(appCfg.GetQuestionsPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load question bank")
	}
	if len(bank) == 0 {
		logger.Warn().Msg("question bank is empty, quiz is disabled")
	}

	// 4. Conversation engine
	eng := engine.New(
		contacts,
		engine.NewQuizManager(bank, quizCfg.LowMax, quizCfg.MediumMax),
		engine.NewRelayTracker(),
	)

	// 5. Telegram transport
	tgCfg := config.NewTelegramConfig(ctx)
	bot, err := telegram.NewBot(ctx, tgCfg, eng, catalog, appCfg.GetAssetsPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	services = append(services, bot)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
