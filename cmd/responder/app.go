package main

import (
	"fmt"
	"log/slog"

	"github.com/cid-docencia/wa-responder/internal/biz"
	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
	"github.com/cid-docencia/wa-responder/internal/conf"
	"github.com/cid-docencia/wa-responder/internal/data"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
	"github.com/cid-docencia/wa-responder/internal/logger"
)

// app holds the wired layers shared by the subcommands
type app struct {
	cfg      *conf.Config
	log      *slog.Logger
	repos    *data.Repositories
	usecases *biz.Usecases
}

func newApp(cfg *conf.Config) (*app, error) {
	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(appLogger)

	waClient := whatsapp.NewClient(cfg.WhatsApp.ToWhatsAppConfig())
	repos, err := data.NewRepositories(cfg.Storage.DBPath, waClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	botStatusUC := usecase.NewBotStatusUsecase(repos.BotStatus, appLogger)
	usecases := &biz.Usecases{
		Responder: usecase.NewResponderUsecase(
			repos.Condition,
			repos.Chat,
			repos.Settings,
			repos.Sender,
			botStatusUC,
			cfg.ToResponderConfig(),
			appLogger,
		),
		BotStatus: botStatusUC,
		Token:     usecase.NewTokenUsecase(repos.Settings, repos.Exchanger, appLogger),
		Messaging: usecase.NewMessagingUsecase(repos.Chat, repos.Sender),
	}

	return &app{cfg: cfg, log: appLogger, repos: repos, usecases: usecases}, nil
}

func (a *app) Close() {
	if err := a.repos.Close(); err != nil {
		a.log.Error("Failed to close database", "error", err)
	}
}
