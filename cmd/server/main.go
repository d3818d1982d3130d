package main

// @title           Library API
// @version         1.0
// @description     Writers and their books. Under /api a book names its writer, which is created when unknown. The same routes are mounted under /api/linked, where resources carry their URL and a book refers to an existing writer by id or URL.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/logger"
	"github.com/snnyvrz/library-api/internal/server"
)

const appVersion = "0.1.0"

func main() {
	startTime := time.Now()

	cfg := config.Load()

	logger.Init(cfg.GinMode, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	database, err := db.ConnectWithRetry(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	router := server.NewRouter(database, server.Options{
		Version:   appVersion,
		StartTime: startTime,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Addr(), router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
