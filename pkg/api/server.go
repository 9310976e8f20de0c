// Package api exposes masking and segmentation over HTTP.
package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/segment"
)

// Server is the HTTP API server.
type Server struct {
	cfg        *config.Config
	masker     *masking.Service
	segmenter  *segment.Segmenter
	db         *sql.DB // nil when the run ledger is disabled
	router     *gin.Engine
	httpServer *http.Server
	tracer     trace.Tracer
}

// NewServer creates the server and registers its routes. db may be nil.
func NewServer(cfg *config.Config, masker *masking.Service, segmenter *segment.Segmenter, db *sql.DB) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), securityHeaders(), bodyLimit(cfg.Server.MaxBodyBytes))

	s := &Server{
		cfg:       cfg,
		masker:    masker,
		segmenter: segmenter,
		db:        db,
		router:    router,
		tracer:    otel.Tracer("github.com/codeready-toolchain/contractmask/pkg/api"),
	}
	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/mask", s.maskHandler)
		v1.POST("/segment", s.segmentHandler)
		v1.POST("/segment-mask", s.segmentMaskHandler)
	}
}

// Router returns the HTTP handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("HTTP server listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
