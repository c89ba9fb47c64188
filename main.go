package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/events-hub-be/internal/api"
	"github.com/isdelr/events-hub-be/internal/config"
	"github.com/isdelr/events-hub-be/internal/database"
	"github.com/isdelr/events-hub-be/internal/logger"
	"github.com/isdelr/events-hub-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Set up the document store client
	client, err := database.New(context.Background(), cfg.ProjectID, cfg.DatabaseID, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Str("project", cfg.ProjectID).Msg("Failed to initialize Firestore client")
	}
	defer client.Close()

	// Set up services
	eventService := services.NewEventService(database.NewFirestoreStore(client), cfg.EventsCollection, cfg.StoreTimeout)

	// Set up router
	router := api.NewRouter(eventService, cfg.CORSAllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("project", cfg.ProjectID).Str("collection", cfg.EventsCollection).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
