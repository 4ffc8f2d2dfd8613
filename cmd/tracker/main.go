package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"tracker/internal/categories"
	"tracker/internal/config"
	"tracker/internal/log"
	"tracker/internal/services"
	"tracker/internal/storage"
	"tracker/internal/tools"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger = log.New(log.Config{Level: level, Component: log.ComponentApp})
	log.SetDefault(logger)

	repo, err := storage.Open(context.Background(), cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err.Error(), log.FieldPath, cfg.DBPath)
		os.Exit(1)
	}
	defer repo.Close()

	tracker := services.NewTracker(repo)
	cats := categories.NewStore(cfg.CategoriesPath)
	srv := tools.NewServer(version, tracker, cats, logger)

	logger.Info("Database location", log.FieldPath, repo.Path())
	logger.Info("Starting MCP server on stdio", "server", tools.ServerName, "version", version)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("Server error", log.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
