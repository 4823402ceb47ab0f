package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
)

const maxRequestBody = 1 << 20

// ProcedureInvoker runs a named procedure with raw JSON input
type ProcedureInvoker interface {
	Invoke(ctx context.Context, name string, raw json.RawMessage) (interface{}, error)
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the procedures over HTTP
type Server struct {
	procedures ProcedureInvoker
	fastCache  interfaces.FastCache
	keys       interfaces.KeyBuilder
	database   Pinger
	adminToken string
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a new HTTP server. An empty adminToken disables the admin endpoints.
func NewServer(
	procedures ProcedureInvoker,
	fastCache interfaces.FastCache,
	keys interfaces.KeyBuilder,
	database Pinger,
	adminToken string,
	logger *zap.Logger,
) *Server {
	return &Server{
		procedures: procedures,
		fastCache:  fastCache,
		keys:       keys,
		database:   database,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Start listens on the configured TCP port and serves until Stop
func (s *Server) Start(cfg *config.ServerConfig) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.createRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/{procedure}", s.handleProcedure).Methods("POST")

	router.HandleFunc("/admin/cache/delete", s.requireAdmin(s.handleCacheDelete)).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

func (s *Server) handleProcedure(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["procedure"]

	raw, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, apierror.BadRequest("failed to read request body: %v", err))
		return
	}
	if len(raw) > 0 && !json.Valid(raw) {
		s.writeError(w, apierror.BadRequest("request body is not valid JSON"))
		return
	}

	start := time.Now()
	out, err := s.procedures.Invoke(r.Context(), name, raw)
	if err != nil {
		s.writeError(w, apierror.From(err))
		return
	}

	s.logger.Debug("Procedure served",
		zap.String("procedure", name),
		zap.Duration("took", time.Since(start)))
	s.writeResponse(w, out)
}

// handleHealth reports healthy unless the snapshot database is unreachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Time: time.Now().UTC()}

	if s.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.database.Ping(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Database = err.Error()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if err := json.NewEncoder(w).Encode(resp); err != nil {
				s.logger.Error("Failed to write response", zap.Error(err))
			}
			return
		}
		resp.Database = "ok"
	}

	s.writeResponse(w, resp)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeError writes the structured error body with the matching status
func (s *Server) writeError(w http.ResponseWriter, apiErr *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus())
	body := ErrorResponse{Error: ErrorBody{Code: apiErr.Code, Message: apiErr.Message}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
