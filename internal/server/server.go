package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/bigpi/internal/config"
	"github.com/agbru/bigpi/internal/engine"
	"github.com/agbru/bigpi/internal/logging"
)

// Server exposes a single-shot π computation and Prometheus metrics
// over HTTP.
type Server struct {
	addr     string
	factory  engine.CalculatorFactory
	cfg      config.AppConfig
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
	httpSrv  *http.Server
}

// New builds a Server bound to addr, using factory to resolve
// algorithm names and cfg for the multiplication thresholds applied to
// every request.
func New(addr string, factory engine.CalculatorFactory, cfg config.AppConfig, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		factory:  factory,
		cfg:      cfg,
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
	}
}

// ListenAndServe starts the HTTP server and blocks until ctx is
// canceled, at which point it shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/compute", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleCompute)))
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// metricsMiddleware tracks in-flight requests and records the outcome
// of each request against Metrics.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			s.metrics.requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		}()

		next(rec, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleMetrics serves the Prometheus exposition format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

type computeResponse struct {
	Digits  uint64  `json:"digits"`
	Value   string  `json:"value"`
	Seconds float64 `json:"seconds"`
	Algo    string  `json:"algorithm"`
}

// handleCompute computes π to the requested number of digits and
// returns it as JSON. Requests exceeding the configured MaxNValue are
// rejected.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	digits, err := strconv.ParseUint(r.URL.Query().Get("digits"), 10, 64)
	if err != nil || digits == 0 {
		http.Error(w, "digits must be a positive integer", http.StatusBadRequest)
		return
	}
	if digits > s.security.MaxNValue {
		http.Error(w, fmt.Sprintf("digits exceeds the maximum of %d", s.security.MaxNValue), http.StatusBadRequest)
		return
	}

	algoName := r.URL.Query().Get("algo")
	if algoName == "" {
		algoName = "auto"
	}
	calc, err := s.factory.Get(algoName)
	if err != nil {
		http.Error(w, fmt.Sprintf("unknown algorithm %q", algoName), http.StatusBadRequest)
		return
	}

	start := time.Now()
	value, err := calc.Calculate(r.Context(), nil, 0, digits, engine.OptionsFromConfig(s.cfg))
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("compute failed", err, logging.Uint64("digits", digits))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.metrics.ObserveMultiplyDuration(calc.Name(), elapsed.Seconds())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(computeResponse{
		Digits:  digits,
		Value:   value,
		Seconds: elapsed.Seconds(),
		Algo:    calc.Name(),
	})
}
