package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fulfillcalc/internal/config"
	"fulfillcalc/internal/logging"
	"fulfillcalc/internal/server"
)

func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		ServiceName: "fulfillcalc-api",
		Environment: cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
