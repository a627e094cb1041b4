/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the uniform pricing engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize the catalog store (SQLite or JSON file)
  3. Create API handler, seed presets when the store is empty
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: uniforms.db, env DB_PATH)
           Use ":memory:" for in-memory database
  -config  JSON catalog file; when set, replaces the SQLite store
           (env CONFIG_PATH)
  -log     Log level: debug, info, warn, error (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run against a SQLite database
  ./server -db="./data/uniforms.db"

  # Run against the shared JSON configuration file
  ./server -config="./config.json"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go, store/jsonfile/jsonfile.go: Store implementations
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/api"
	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/store/jsonfile"
	"github.com/warp/uniform-engine/store/sqlite"
)

func main() {
	// .env is optional; flags and real env vars win over it.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "uniforms.db"), "SQLite database path")
	configPath := flag.String("config", envStr("CONFIG_PATH", ""), "JSON catalog file (replaces SQLite store)")
	logLevel := flag.String("log", envStr("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown log level %q, using info", *logLevel)
	}

	// Initialize store
	var store catalog.Store
	if *configPath != "" {
		store = jsonfile.New(*configPath, log)
		log.WithField("path", *configPath).Info("using JSON file store")
	} else {
		s, err := sqlite.New(*dbPath, log)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer s.Close()
		store = s
		log.WithField("path", *dbPath).Info("using SQLite store")
	}

	// Initialize handler and seed presets when the store is empty
	handler := api.NewHandler(store, log)
	if err := handler.LoadCatalog(context.Background()); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Create router
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server starting on http://localhost:%d", *port)
		log.Infof("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
