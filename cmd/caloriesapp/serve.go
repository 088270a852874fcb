package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/caloriesapp/backend/internal/api"
	"github.com/caloriesapp/backend/internal/config"
	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}

	var objects *storage.ObjectStore
	if cfg.StorageAccessKey != "" {
		objects, err = storage.New(cmd.Context(), storage.Config{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
		})
		if err != nil {
			return err
		}
	} else {
		log.Println("photo storage not configured, uploads disabled")
	}

	handler, err := api.NewHandler(cmd.Context(), cfg, database, objects)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "caloriesapp",
		BodyLimit:             20 << 20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("caloriesapp listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBDriver)
	return app.Listen(":" + cfg.Port)
}
