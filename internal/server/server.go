// Package server exposes week records over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

const maxBodyBytes = 1 << 20

// Store is the persistence the handlers need
type Store interface {
	Get(ctx context.Context, weekKey string) (domain.WeekRecord, bool, error)
	Put(ctx context.Context, weekKey string, rec domain.WeekRecord) error
	Summary(ctx context.Context) (domain.Summary, error)
}

// Options configures the listener
type Options struct {
	Addr           string
	AllowedOrigins []string
}

type Server struct {
	store    Store
	logger   *slog.Logger
	validate *validator.Validate
	handler  http.Handler
	server   *http.Server
}

// recordPayload is the POST body; absent members keep their defaults
type recordPayload struct {
	Completions domain.CompletionRecord `json:"completions"`
	Stats       domain.Stats            `json:"stats"`
}

func New(opts Options, store Store, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/completions/{weekKey}", s.handleGetWeek)
	mux.HandleFunc("POST /api/completions/{weekKey}", s.handlePutWeek)
	mux.HandleFunc("GET /api/stats/summary", s.handleSummary)

	s.handler = Chain(mux,
		WithRequestID,
		WithRecover(logger),
		WithAccessLog(logger),
		WithCORS(opts.AllowedOrigins),
	)

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens in the background; listener errors go to errChan
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.server.Addr = ln.Addr().String()
	s.logger.Info("server listening", "addr", s.server.Addr)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Etsy Tracker API",
		"status":  "running",
	})
}

// pathWeekKey reads the week from the URL and anchors it to its Monday,
// so any date inside a week addresses the same record
func pathWeekKey(r *http.Request) (string, error) {
	day, err := domain.ParseWeekKey(r.PathValue("weekKey"))
	if err != nil {
		return "", err
	}
	return domain.WeekKey(day), nil
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	weekKey, err := pathWeekKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, _, err := s.store.Get(r.Context(), weekKey)
	if err != nil {
		s.logger.Error("load week", "request_id", RequestIDFromContext(r.Context()), "week", weekKey, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load week")
		return
	}

	writeJSON(w, http.StatusOK, recordPayload{Completions: rec.Completions, Stats: rec.Stats})
}

func (s *Server) handlePutWeek(w http.ResponseWriter, r *http.Request) {
	weekKey, err := pathWeekKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body recordPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(body.Stats); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid stats: %v", err))
		return
	}
	if body.Completions == nil {
		body.Completions = domain.CompletionRecord{}
	}

	if err := s.store.Put(r.Context(), weekKey, domain.WeekRecord{Completions: body.Completions, Stats: body.Stats}); err != nil {
		s.logger.Error("save week", "request_id", RequestIDFromContext(r.Context()), "week", weekKey, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save week")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.Summary(r.Context())
	if err != nil {
		s.logger.Error("summary", "request_id", RequestIDFromContext(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
