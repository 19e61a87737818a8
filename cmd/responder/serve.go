package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cid-docencia/wa-responder/internal/api"
	"github.com/cid-docencia/wa-responder/internal/conf"
	"github.com/cid-docencia/wa-responder/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook and admin API server",
	Long:  "Serves the WhatsApp webhook and the admin API, and refreshes the Graph API token in the background.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := conf.LoadFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		log := a.log.With("component", "cmd.serve")

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scheduler := service.NewTokenScheduler(a.usecases.Token, cfg.Scheduler.TokenCheckInterval, a.log)
		scheduler.Start(runCtx)
		defer scheduler.Stop()

		server := api.NewServer(a.usecases, api.Stores{
			Conditions: a.repos.Condition,
			Chats:      a.repos.Chat,
			Settings:   a.repos.Settings,
			Layout:     a.repos.Layout,
		}, api.Config{
			ListenAddr:    cfg.Server.ListenAddr,
			AdminToken:    cfg.Admin.Token,
			WebhookSecret: cfg.WhatsApp.AppSecret,
		}, a.log)

		if cfg.WhatsApp.AppSecret == "" {
			log.Warn("WEBHOOK_APP_SECRET not set, webhook signatures are not verified")
		}
		if cfg.Messages != nil && cfg.Messages.Source != "" {
			log.Info("Loaded reply texts", "path", cfg.Messages.Source)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-runCtx.Done():
		}

		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
