package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tianji/internal/config"
)

// NewServer creates and configures the HTTP server for the tianji web surface:
// the almanac page at the root plus a JSON API under /api.
func NewServer(db *sql.DB, cfg *config.Config, version, bind string, port int) *http.Server {
	h := &Handlers{
		db:      db,
		cfg:     cfg,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleAlmanacPage)

	mux.HandleFunc("GET /api/charts", h.HandleList)
	mux.HandleFunc("POST /api/charts", h.HandleDivine)
	mux.HandleFunc("GET /api/charts/{id}", h.HandleFetch)
	mux.HandleFunc("DELETE /api/charts/{id}", h.HandleDelete)
	mux.HandleFunc("POST /api/charts/{id}/cultivate/start", h.HandleCultivateStart)
	mux.HandleFunc("POST /api/charts/{id}/cultivate/end", h.HandleCultivateEnd)
	mux.HandleFunc("GET /api/charts/{id}/cultivate", h.HandleCultivateStatus)
	mux.HandleFunc("GET /api/celestial", h.HandleSnapshot)
	mux.HandleFunc("GET /api/wisdom", h.HandleWisdom)
	mux.HandleFunc("GET /api/almanac", h.HandleAlmanac)

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'unsafe-inline'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("tianji running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
