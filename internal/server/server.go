package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/config"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
)

// Snapshots persists the last-entered input.
type Snapshots interface {
	Save(ctx context.Context, in basin.Input) error
	Load(ctx context.Context) (basin.Input, error)
	Clear(ctx context.Context) error
}

// SoilLookup resolves the map units of an area of interest.
type SoilLookup interface {
	Lookup(ctx context.Context, b geo.Bounds) ([]soil.MapUnit, error)
}

// Server is the HTTP API for the basin calculator.
type Server struct {
	cfg       config.Config
	snapshots Snapshots
	soil      SoilLookup
	limiter   *IPRateLimiter
	router    *mux.Router
}

// New creates a server and registers its routes.
func New(cfg config.Config, snapshots Snapshots, lookup SoilLookup) *Server {
	s := &Server{
		cfg:       cfg,
		snapshots: snapshots,
		soil:      lookup,
		limiter:   NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/defaults", s.handleDefaults).Methods(http.MethodGet)
	api.HandleFunc("/schema", s.handleSchema).Methods(http.MethodGet)
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.HandleFunc("/snapshot", s.handleGetSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", s.handlePutSnapshot).Methods(http.MethodPut)
	api.HandleFunc("/snapshot", s.handleDeleteSnapshot).Methods(http.MethodDelete)
	api.HandleFunc("/report.pdf", s.handleReportPDF).Methods(http.MethodPost)
	api.HandleFunc("/report.xlsx", s.handleReportXLSX).Methods(http.MethodPost)
	api.Handle("/soil", s.limiter.Middleware(http.HandlerFunc(s.handleSoil))).Methods(http.MethodPost)
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.cors(s.router)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Recharge basin calculator listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
