// Package httpapi exposes the balance pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
)

// Assessor runs one groundwater balance assessment.
type Assessor interface {
	Assess(ctx context.Context, lat, lon, farmAreaAres float64) (domain.BalanceResult, error)
	CheckReadiness(ctx context.Context) error
}

// Server wraps the HTTP listener plus routing for the balance API.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	logger     *slog.Logger
}

// balanceRequest is the POST /gw-balance body.
type balanceRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	FarmAreaAres float64 `json:"farm_area_ares"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the server with all routes registered.
func NewServer(addr string, assessor Assessor, logger *slog.Logger) *Server {
	s := &Server{
		assessor: assessor,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /gw-balance", s.handleBalance)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called. http.ErrServerClosed is reported as a clean exit.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP makes the server usable directly in tests without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	// Extra body keys are tolerated; clients send richer payloads than the
	// fields consumed here.
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Latitude < -90 || req.Latitude > 90 {
		s.writeError(w, http.StatusBadRequest, "latitude out of range [-90, 90]")
		return
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		s.writeError(w, http.StatusBadRequest, "longitude out of range [-180, 180]")
		return
	}
	if req.FarmAreaAres <= 0 {
		s.writeError(w, http.StatusBadRequest, "farm_area_ares must be positive")
		return
	}

	result, err := s.assessor.Assess(r.Context(), req.Latitude, req.Longitude, req.FarmAreaAres)
	if err != nil {
		s.writeError(w, statusFor(err), domain.UserMessage(err))
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.assessor.CheckReadiness(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusFor maps pipeline failure kinds onto HTTP statuses. Anything
// untyped is an internal fault.
func statusFor(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case domain.KindUnresolvableLocation:
		return http.StatusUnprocessableEntity
	case domain.KindMissingReference:
		return http.StatusNotFound
	case domain.KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
