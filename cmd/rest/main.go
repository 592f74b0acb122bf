package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"ai-docgen-be/internal/bootstrap"
	"ai-docgen-be/internal/config"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/server"
	"ai-docgen-be/internal/tracer"
	"ai-docgen-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional, template library falls back to memory)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&model.TemplateRecord{}); err != nil {
			log.Panicf("Unable to migrate template table: %v", err)
		}
		gormDB = db
	} else {
		log.Println("No DB_CONNECTION_STRING set, template library is in-memory")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Broadcast Service...")
		if err := container.BroadcastService.Consume(context.Background()); err != nil {
			log.Printf("Background Broadcast Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
