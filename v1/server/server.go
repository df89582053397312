package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server exposes ingestion and search over HTTP.
type Server struct {
	echo      *echo.Echo
	cfg       Config
	logger    Logger
	ingester  Ingester
	searcher  Searcher
	resolver  Resolver
	extractor Extractor
	archiver  Archiver
	recorder  Recorder
}

// Option customizes a Server.
type Option func(*Server)

// WithArchiver stores every uploaded document before it is ingested.
func WithArchiver(a Archiver) Option {
	return func(s *Server) {
		s.archiver = a
	}
}

// WithRecorder records request counts and durations.
func WithRecorder(r Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// NewServer wires the routes. The server does not listen until Start.
func NewServer(cfg Config, ingester Ingester, searcher Searcher, resolver Resolver, extractor Extractor, logger Logger, opts ...Option) *Server {
	cfg.ApplyDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		echo:      e,
		cfg:       cfg,
		logger:    logger,
		ingester:  ingester,
		searcher:  searcher,
		resolver:  resolver,
		extractor: extractor,
	}
	for _, opt := range opts {
		opt(s)
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.observe)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/documents", s.handleIngest)
	v1.POST("/search", s.handleSearch)
	v1.GET("/actors/:id/candidates", s.handleCandidates)
}

// observe logs and records every request once its status is known.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		status := c.Response().Status
		if s.recorder != nil {
			s.recorder.IncrementRequests(route, strconv.Itoa(status))
			s.recorder.RecordRequestDuration(start, route)
		}
		s.logger.DebugWithContext(c.Request().Context(), "http request", nil, map[string]interface{}{
			"method":      c.Request().Method,
			"route":       route,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
		})
		return nil
	}
}

// Handler returns the routed handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting http server", nil, map[string]interface{}{"address": s.cfg.Address})
	if err := s.echo.Start(s.cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server", nil, nil)
	return s.echo.Shutdown(ctx)
}
