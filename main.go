package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dmarquez/taskflow-be/internal/api"
	"github.com/dmarquez/taskflow-be/internal/auth"
	"github.com/dmarquez/taskflow-be/internal/config"
	"github.com/dmarquez/taskflow-be/internal/database"
	"github.com/dmarquez/taskflow-be/internal/logger"
	"github.com/dmarquez/taskflow-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET not set, using the development default")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)

	// Set up router
	router := api.NewRouter(tokenService, userService, taskService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
