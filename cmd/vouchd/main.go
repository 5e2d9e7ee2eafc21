// Command vouchd runs the ledger core as a maintenance daemon: it applies
// migrations and keeps the approval sweeper running. It attaches no chat
// platform; an embedding bot wires the core through internal/app instead.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/vouchd/internal/app"
	"github.com/heartmarshall/vouchd/internal/config"
	"github.com/heartmarshall/vouchd/internal/platform"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	core, err := app.New(ctx, cfg, logger, app.Capabilities{
		Renamer:  platform.Headless{},
		Notifier: platform.Headless{},
		Roles:    platform.Headless{},
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := core.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
