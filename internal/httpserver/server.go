// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cfgpkg "github.com/tamzrod/f70-replicator/internal/config"
	"github.com/tamzrod/f70-replicator/internal/poller"
	"github.com/tamzrod/f70-replicator/internal/status"
)

// StateSource is the read side of the runner.
type StateSource interface {
	Snapshot() status.Snapshot
	LastResult() (poller.PollResult, bool)
	Ready() bool
}

// Server wraps gin and http.Server.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// statusResponse is the /status body.
type statusResponse struct {
	InstanceID string             `json:"instance_id,omitempty"`
	Health     string             `json:"health"`
	Snapshot   status.Snapshot    `json:"snapshot"`
	Last       *poller.PollResult `json:"last,omitempty"`
	LastError  string             `json:"last_error,omitempty"`
}

// New builds the router: health, readiness, status and metrics.
func New(cfg cfgpkg.HTTPConfig, src StateSource, metricsHandler http.Handler, instanceID string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/readyz", func(c *gin.Context) {
		if src == nil || src.Ready() {
			c.String(http.StatusOK, "ready")
			return
		}
		c.String(http.StatusServiceUnavailable, "not-ready")
	})
	r.GET("/status", func(c *gin.Context) {
		if src == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no state source"})
			return
		}
		snap := src.Snapshot()
		body := statusResponse{
			InstanceID: instanceID,
			Health:     status.HealthName(snap.Health),
			Snapshot:   snap,
		}
		if last, ok := src.LastResult(); ok {
			body.Last = &last
			if last.Err != nil {
				body.LastError = last.Err.Error()
			}
		}
		c.JSON(http.StatusOK, body)
	})

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = cfgpkg.DefaultMetricsPath
	}
	if metricsHandler != nil {
		r.GET(metricsPath, gin.WrapH(metricsHandler))
	}

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until Shutdown (blocking).
func (s *Server) Start() error {
	s.log.Info("http listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
