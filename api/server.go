package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"weather-proxy/datasource"
	"weather-proxy/format"
)

const (
	// ForecastPath is the only route the device calls
	ForecastPath = "/forecast/"
	// ServerSignature is sent as the Server header on forecast responses,
	// matching what the device sees from the vendor's service
	ServerSignature = "Apache/2.4.7 (Ubuntu)"
)

// Server represents the forecast proxy server
type Server struct {
	source       datasource.ReportSource
	loc          *time.Location
	fetchTimeout time.Duration
	logger       *zap.SugaredLogger
	router       *mux.Router
	server       *http.Server
}

// Option customises a Server
type Option func(*Server)

// WithLocation sets the zone used for local times in both feeds
func WithLocation(loc *time.Location) Option {
	return func(s *Server) { s.loc = loc }
}

// WithFetchTimeout bounds the whole upstream fetch, rate-limit wait included.
// Zero leaves the fetch bounded only by the source itself.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Server) { s.fetchTimeout = d }
}

// NewServer creates a new proxy server answering on addr
func NewServer(source datasource.ReportSource, addr string, logger *zap.SugaredLogger, opts ...Option) *Server {
	s := &Server{
		source: source,
		loc:    time.Local,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.setupRouter()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(s.loggingMiddleware)
	router.Use(handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.logger.Desugar())),
		handlers.PrintRecoveryStack(true),
	))

	router.HandleFunc(ForecastPath, s.handleForecast).Methods(http.MethodGet, http.MethodHead)
	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	return router
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins the proxy server
func (s *Server) Start() error {
	s.logger.Infof("Starting forecast proxy on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleForecast serves GET /forecast/?coord=<lon>,<lat>[&asl=<n>][&format=<0|1>]
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	req, err := parseForecastRequest(r.URL.Query())
	if err != nil {
		s.logger.Warnw("Rejected forecast request", "query", r.URL.RawQuery, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	report, err := s.source.FetchReport(ctx, req.Coordinate)
	if err != nil {
		s.writeFetchError(w, req.Coordinate, err)
		return
	}
	report.Longitude = req.Coordinate.Longitude
	report.Latitude = req.Coordinate.Latitude

	formatter := format.For(req.Format, s.loc)
	body, err := formatter.Format(report, req.Coordinate.Altitude)
	if err != nil {
		s.logger.Errorw("Failed to format forecast", "coord", req.Coordinate.String(), "error", err)
		http.Error(w, "failed to format forecast", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Server", ServerSignature)
	h.Set("Vary", "Accept-Encoding")
	h.Set("Connection", "close")
	h.Set("Content-Type", formatter.ContentType())
	w.WriteHeader(http.StatusOK)

	// Flushing before any body bytes commits the headers without a
	// Content-Length, so the body goes out chunked.
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	if _, err := w.Write(body); err != nil {
		s.logger.Debugw("Client went away during write", "error", err)
	}
}

func (s *Server) writeFetchError(w http.ResponseWriter, coord datasource.Coordinate, err error) {
	var upstreamErr *datasource.UpstreamError
	switch {
	case errors.As(err, &upstreamErr) && upstreamErr.Timeout():
		s.logger.Errorw("Upstream timed out", "coord", coord.String(), "error", err)
		http.Error(w, "upstream timed out", http.StatusGatewayTimeout)
	case errors.As(err, &upstreamErr):
		s.logger.Errorw("Upstream unavailable", "coord", coord.String(), "status", upstreamErr.StatusCode, "error", err)
		http.Error(w, fmt.Sprintf("upstream unavailable (status %d)", upstreamErr.StatusCode), http.StatusBadGateway)
	default:
		s.logger.Errorw("Failed to load report", "coord", coord.String(), "error", err)
		http.Error(w, "failed to load report", http.StatusInternalServerError)
	}
}

// handleNotFound answers every other path with an empty 404
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Infow("Unknown route", "method", r.Method, "path", r.URL.Path, "query", r.URL.Query())
	w.WriteHeader(http.StatusNotFound)
}
