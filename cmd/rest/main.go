package main

import (
	"context"
	"log"

	"github.com/CRautomation-ai/showcase-agent/internal/bootstrap"
	"github.com/CRautomation-ai/showcase-agent/internal/config"
	"github.com/CRautomation-ai/showcase-agent/internal/model"
	"github.com/CRautomation-ai/showcase-agent/internal/server"
	"github.com/CRautomation-ai/showcase-agent/internal/tracer"
	"github.com/CRautomation-ai/showcase-agent/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.EnsureVectorExtension(gormDB); err != nil {
		log.Panicf("Unable to install pgvector extension: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.DocumentChunk{}); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
