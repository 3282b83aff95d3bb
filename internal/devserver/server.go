// Package devserver implements the starter web server: a small JSON API
// with health and sample endpoints, permissive CORS for local frontends,
// and a PID file so the status command can find the process.
package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// DefaultPort is the port the dev server binds when none is configured.
const DefaultPort = 8000

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 5 * time.Second

// Server is the starter HTTP server.
type Server struct {
	port    int
	pidPath string
}

// New creates a Server. pidPath may be empty to skip PID tracking.
func New(port int, pidPath string) *Server {
	if port <= 0 {
		port = DefaultPort
	}
	return &Server{port: port, pidPath: pidPath}
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/":
			s.handleRoot(w, r)
		case strings.HasPrefix(r.URL.Path, "/users/"):
			s.handleUser(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/docs", s.handleDocs)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Welcome to Claude Code Dev Starter",
		"docs_url": "/docs",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "user id must be an integer"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user_id": id, "name": "John Doe"})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"endpoints": []map[string]string{
			{"method": "GET", "path": "/", "description": "welcome message"},
			{"method": "GET", "path": "/health", "description": "health check"},
			{"method": "GET", "path": "/users/{id}", "description": "sample user lookup"},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cors applies permissive CORS headers so local frontends on other ports
// can call the API, and short-circuits preflight requests.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start writes the PID file, listens until SIGINT or SIGTERM arrives, then
// shuts down gracefully and removes the PID file. The signal handler is
// installed before the PID file is written so an early termination cannot
// leave a stale file behind.
func (s *Server) Start() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if s.pidPath != "" {
		if err := WritePID(s.pidPath, os.Getpid()); err != nil {
			return fmt.Errorf("write pid file: %w", err)
		}
		defer RemovePID(s.pidPath)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: cors(s.routes()),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("dev server: http://localhost:%d", s.port)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on :%d: %w", s.port, err)
	case <-signals:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
