package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tt-championship/config"
	"github.com/Dosada05/tt-championship/db"
	"github.com/Dosada05/tt-championship/handlers"
	"github.com/Dosada05/tt-championship/logger"
	"github.com/Dosada05/tt-championship/realtime"
	"github.com/Dosada05/tt-championship/repositories"
	api "github.com/Dosada05/tt-championship/routes"
	"github.com/Dosada05/tt-championship/services"
	"github.com/Dosada05/tt-championship/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// @title       Table Tennis Championship API
// @version     1.0
// @description Groups, standings and knockout brackets for table tennis championships.
// @BasePath    /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "tt-championship",
	})
	defer log.Sync()
	log.Info("configuration loaded", "port", cfg.ServerPort, "storage", cfg.StorageDriver)

	var repo repositories.ChampionshipRepository
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				log.Error("failed to close database connection", "error", err)
			}
		}()
		if err := repositories.EnsureSchema(context.Background(), dbConn); err != nil {
			log.Fatal("failed to prepare database schema", "error", err)
		}
		repo = repositories.NewPostgresChampionshipRepository(dbConn)
		log.Info("database connection established")
	default:
		repo = repositories.NewMemoryChampionshipRepository()
		log.Warn("using in-memory storage, data is lost on restart")
	}

	var archiver services.Archiver
	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			log.Fatal("failed to initialize Cloudflare R2 uploader", "error", err)
		}
		archiver = storage.NewSnapshotArchiver(uploader)
		log.Info("championship archive enabled", "bucket", cfg.R2.BucketName)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := realtime.NewHub(log.With("component", "websocket"))
	go wsHub.Run(hubCtx)

	championshipService := services.NewChampionshipService(repo, wsHub, archiver, log.With("component", "championships"))

	router := chi.NewRouter()
	api.SetupRoutes(router, log, cfg.CORSAllowedOrigins, api.Handlers{
		Championship: handlers.NewChampionshipHandler(championshipService),
		Athlete:      handlers.NewAthleteHandler(championshipService),
		Group:        handlers.NewGroupHandler(championshipService),
		Match:        handlers.NewMatchHandler(championshipService),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, championshipService, cfg.CORSAllowedOrigins),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     zap.NewStdLog(log.Zap()),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		stopHub()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
			if closeErr := server.Close(); closeErr != nil {
				log.Error("failed to force close server", "error", closeErr)
			}
			os.Exit(1)
		}
		log.Info("server shutdown complete")
	}
}
