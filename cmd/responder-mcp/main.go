package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cid-docencia/wa-responder/internal/conf"
	"github.com/cid-docencia/wa-responder/internal/logger"
	"github.com/cid-docencia/wa-responder/internal/mcp"
)

var version = "dev"

// Exposes the admin API as MCP tools over stdio.
// Logs go to stderr, stdout carries the protocol.
func main() {
	_ = godotenv.Load()

	cfg := conf.LoadFromEnv()
	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	log := appLogger.With("component", "cmd.mcp")

	if cfg.Admin.Token == "" {
		log.Error("ADMIN_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := mcp.NewClient(cfg.Admin.APIURL, cfg.Admin.Token)
	server := mcp.NewServer(mcp.NewHandler(client), version)

	log.Info("MCP server started", "api", cfg.Admin.APIURL)
	if err := mcp.ServeStdio(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("MCP server failed", "error", err)
		os.Exit(1)
	}
}
