package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/config"
	"github.com/arzan03/storefront/internal/db"
	"github.com/arzan03/storefront/internal/logger"
	"github.com/arzan03/storefront/internal/server"
	"github.com/arzan03/storefront/internal/storage"
	"github.com/arzan03/storefront/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	var (
		stores store.Stores
		client *mongo.Client
	)
	switch cfg.StoreDriver {
	case "memory":
		zlog.Warn("Using in-memory store, data will not survive a restart")
		stores = store.NewMemory()
	default:
		client, err = db.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		database := client.Database(cfg.Mongo.Database)
		if err := db.EnsureIndexes(ctx, database); err != nil {
			zlog.Fatal("Failed to create indexes", zap.Error(err))
		}
		stores = store.NewMongo(database, cfg.Mongo.Timeout)
		zlog.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
	}

	var images storage.ImageStore
	switch cfg.Storage.Driver {
	case "minio":
		images, err = storage.NewMinio(ctx, cfg.Minio, zlog)
		if err != nil {
			zlog.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
	default:
		images, err = storage.NewLocal(cfg.Storage.PublicDir)
		if err != nil {
			zlog.Fatal("Failed to initialize image directory", zap.Error(err))
		}
	}

	app := server.New(server.Deps{Config: cfg, Stores: stores, Images: images, Log: zlog})

	go func() {
		zlog.Info("Server listening", zap.String("port", cfg.Port), zap.String("prefix", cfg.APIPrefix))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("Server shutdown", zap.Error(err))
	}
	if client != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			zlog.Error("MongoDB disconnect", zap.Error(err))
		}
	}
}
