package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/config"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/providers/llm"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/service/command"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/storage/sqlite"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/transport/cli"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/transport/telegram"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/srv"
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

	// 3. Model provider
	client, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Word lists, overridable from the runtime directory
	vocab, err := farmctx.LoadVocabulary(appCfg.GetVocabularyPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	selector, err := orchestrator.LoadSelectorConfig(appCfg.GetSelectorPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load selector config")
	}

	defaultPhase, err := core.ParsePhase(appCfg.DefaultPhase)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid default crop phase")
	}

	// 5. Sessions
	sessions := orchestrator.NewSessionStore(orchestrator.StoreConfig{
		Client:             client,
		Conversations:      sqlite.NewConversationsRepo(db),
		Seasons:            sqlite.NewSeasonsRepo(db),
		DefaultPhase:       defaultPhase,
		DefaultFarmerType:  core.ParseFarmerType(appCfg.DefaultFarmerType),
		HistoryWindow:      appCfg.HistoryWindowSize,
		ParticipantTimeout: time.Duration(appCfg.ParticipantTimeout) * time.Second,
		CacheSize:          appCfg.SessionCacheSize,
		WeatherAPIKey:      os.Getenv("OPENWEATHER_API_KEY"),
		Vocabulary:         vocab,
		Selector:           selector,
	})

	// 6. Commands
	router := command.New(command.NewCommands(sessions))

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, sessions, router)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	sessions *orchestrator.SessionStore,
	router core.CmdRouter,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, sessions, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(sessions, router, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
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
