package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/djmgmz/tdd-jest/config"
	"github.com/djmgmz/tdd-jest/database"
	"github.com/djmgmz/tdd-jest/models"
	"github.com/djmgmz/tdd-jest/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	log.Println("🚀 Starting posts service...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	model, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer closeStore()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	router := routes.SetupRouter(cfg, model)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}

func openStore(cfg *config.Config) (models.PostModel, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		log.Println("🔌 Connecting to MongoDB...")
		if err := database.ConnectMongoWithRetry(cfg, 2*time.Second); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := database.DisconnectMongo(); err != nil {
				log.Printf("MongoDB disconnect error: %v", err)
			}
		}
		return database.NewMongoPosts(database.Posts), closeFn, nil

	case config.DriverPostgres:
		log.Println("🔌 Connecting to Postgres...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		store, err := database.NewPostgresPosts(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		log.Println("Using in-memory storage")
		return database.NewMemoryPosts(), func() {}, nil
	}
}
