package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"choretracker/internal/config"
	"choretracker/internal/handlers"
	"choretracker/internal/scheduler"
	"choretracker/internal/service"
	"choretracker/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadOrCreate(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize store
	s, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer s.Close()

	tasks, err := service.New(ctx, s, service.Options{
		Now:     time.Now,
		Seed:    cfg.Seed.Enabled,
		Anchors: cfg.Seed.Anchors,
	})
	if err != nil {
		log.Fatalf("Failed to load tasks: %v", err)
	}
	tasks.Subscribe(func(e service.Event) {
		log.Printf("task %s %s", e.Kind, e.TaskID)
	})

	// Daily summary
	if cfg.Summary.Time != "" {
		sched := scheduler.New(time.Local)
		if _, err := sched.ScheduleDaily(cfg.Summary.Time, func() {
			log.Printf("daily summary\n%s", scheduler.Summary(tasks.List(), time.Now()))
		}); err != nil {
			log.Fatalf("Failed to schedule summary: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	handlers.New(tasks, nil).Register(r)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting server on http://localhost%s (%s store at %s)", srv.Addr, cfg.Storage.Backend, cfg.Storage.Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Shutdown complete.")
}
