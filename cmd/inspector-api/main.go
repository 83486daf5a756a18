// Command inspector-api serves site inspection summaries and heatmaps
// over HTTP for the viewer frontend.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Simon-Lee-UK/air-pollution/internal/aurn"
	"github.com/Simon-Lee-UK/air-pollution/internal/config"
	"github.com/Simon-Lee-UK/air-pollution/internal/log"
	"github.com/Simon-Lee-UK/air-pollution/internal/server"
	"github.com/Simon-Lee-UK/air-pollution/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := aurn.NewClient(cfg.Source(), cfg.RequestTimeout)
	builder := summary.NewBuilder(client, cfg.Convention(), cfg.RequestDelay)
	builder.PreviewRows = cfg.PreviewRows

	srv := server.New(cfg, builder)
	log.Infof("inspector API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
