package main

import (
	"context"
	"log"

	"aerogap-backend/internal/bootstrap"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/server"
	"aerogap-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := telemetry.Init(cfg.LogFormat, cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer telemetry.Sync()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.starting", map[string]any{
		"addr":         addr,
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     app.DB != nil,
		"queue":        app.Queue != nil,
	})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
