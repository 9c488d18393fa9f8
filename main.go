package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ChemaTorresGarvia/fichas-backend/internal/catalog"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/config"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/database"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/events"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/review"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/scheduler"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/server"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/streak"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		log.Fatalf("Failed to resolve database DSN: %v", err)
	}
	if err := database.Connect(cfg.DB.Type, dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	cardRepo := database.NewFlashcardRepository()
	progressRepo := database.NewProgressRepository()
	streakRepo := database.NewStreakRepository()

	// Seed the catalog from the bundled dataset on first run.
	seeded, err := catalog.Seed(cardRepo, cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	if seeded > 0 {
		log.Printf("Seeded catalog with %d flashcards from %s", seeded, cfg.CatalogPath)
	}

	broker := events.NewBroker()
	engine := review.NewEngine(progressRepo, cardRepo, broker)
	tracker := streak.NewTracker(streakRepo)
	hub := server.NewHub()

	// Every recorded outcome counts as study activity and refreshes views.
	broker.Subscribe(func(update events.ProgressUpdate) {
		if _, err := tracker.RegisterActivity(update.UserKey, update.Day); err != nil {
			log.Printf("Failed to register streak activity for %q: %v", update.UserKey, err)
		}
	})
	broker.Subscribe(hub.NotifyProgress)

	if cfg.Reminders.Enabled {
		sched := scheduler.New(engine, progressRepo, hub, cfg.Reminders.StartHour, cfg.Reminders.EndHour)
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(engine, cardRepo, progressRepo, tracker, hub)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Router(cfg.HTTP.AllowedOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on %s", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
