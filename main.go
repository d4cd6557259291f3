package main

import (
	"flag"
	"os"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/tobenna/librarium/config"
	_ "github.com/tobenna/librarium/docs"
	"github.com/tobenna/librarium/handler"
	"github.com/tobenna/librarium/internal/jsonlog"
	"github.com/tobenna/librarium/repository"
	"github.com/tobenna/librarium/repository/postgres"
	"github.com/tobenna/librarium/service"
	"golang.org/x/time/rate"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Librarium API
// @version 1.0
// @description Library management service for books, readers and lendings.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (environment variables are used when empty)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Per-client rate limiters, evicted after a few minutes of inactivity
	clients := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go clients.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, clients, service)

	if err := service.SeedDefaultReaders(); err != nil {
		logger.PrintFatal(err, nil)
	}

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
