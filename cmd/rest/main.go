package main

import (
	"context"
	"log"

	"fiberise-be/internal/bootstrap"
	"fiberise-be/internal/config"
	"fiberise-be/internal/server"
	"fiberise-be/internal/tracer"
	"fiberise-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration, fail fast on missing secrets
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate database schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
