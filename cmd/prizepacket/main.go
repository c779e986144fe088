package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prizepacket/prizepacket/internal/api"
	"github.com/prizepacket/prizepacket/internal/config"
	"github.com/prizepacket/prizepacket/internal/database"
	"github.com/prizepacket/prizepacket/internal/installer"
	"github.com/prizepacket/prizepacket/internal/repository"
)

func main() {
	ctx := context.Background()

	// The config store written by the installer is the installed marker.
	// Before installation only /install, /health and /metrics are served.
	store := config.NewFileStore(os.Getenv("PRIZEPACKET_CONFIG"))
	installed := store.Exists()
	if installed {
		if err := store.Load(); err != nil {
			log.Fatalf("Failed to load persisted configuration %s: %v", store.Path(), err)
		}
	} else {
		log.Printf("No configuration at %s, starting in install mode", store.Path())
	}

	// Load configuration from environment variables
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting prizepacket service in %s mode", cfg.App.Environment)

	// Initialize database connections once installed
	var db *database.DB
	if installed {
		db, err = database.NewDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing database connections: %v", err)
			}
		}()

		if installedAt, err := repository.NewSettingsRepository().Get(db.Postgres, "installed_at"); err == nil {
			log.Printf("Instance installed at %s", installedAt)
		}
	}

	r := chi.NewRouter()

	// Installer entry point; its own guard answers AlreadyInstalled after
	// the first successful run
	r.Post("/install", installer.NewHandler(installer.New(store)).Install)

	// Add health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		hostname, _ := os.Hostname()
		w.WriteHeader(http.StatusOK)
		response := fmt.Sprintf(`{"status":"ok","service":"prizepacket","installed":%t,"hostname":"%s"}`, installed, hostname)
		w.Write([]byte(response))
	})

	// Add Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	if db != nil {
		// Add database health check endpoint
		r.Get("/health/db", func(w http.ResponseWriter, req *http.Request) {
			if err := db.Postgres.PingContext(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"error","message":"postgres unavailable"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","postgres":"connected"}`))
		})

		// Domain routes for the admin panel collaborator
		api.NewHandler(db.Postgres).Mount(r)
	}

	// Create server; h2c so we can serve HTTP/2 without TLS
	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		Handler:        h2c.NewHandler(r, &http2.Server{}),
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting prizepacket service on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
