package main

import (
	"context"
	"log"

	"stayops-be/internal/bootstrap"
	"stayops-be/internal/config"
	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/server"
	"stayops-be/internal/tracer"
	"stayops-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	ctx := context.Background()

	go func() {
		log.Println("Background: Starting ingest consumer...")
		if err := container.IngestService.Consume(ctx); err != nil {
			log.Printf("Background ingest consumer error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting queue refresher...")
		container.Refresher.Run(ctx)
	}()

	go func() {
		log.Println("Background: Starting SLA monitor...")
		container.SlaMonitor.Run(ctx)
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container, sysLogger)

	// 6. Run Server
	log.Fatal(srv.Run())
}
