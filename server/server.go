// Package server exposes the conversion pipeline over HTTP for the
// paste-and-convert UI: convert a pasted export, browse and export the
// run history, list taxonomies. The history log is the only mutable state.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/extract"
	"github.com/gaurav-prasanna/qbformat/core/history"
)

// maxBodyBytes bounds a pasted export.
const maxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	// Mode is used when a request names no mode.
	Mode         core.Taxonomy
	AllowOrigins []string
	HistoryLimit int
	PDFFontPath  string
	Logger       *zap.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Server handles the HTTP API.
type Server struct {
	mode      core.Taxonomy
	origins   []string
	pdfFont   string
	log       *zap.Logger
	now       func() time.Time
	history   *history.Log
	metrics   *Metrics
	extractor core.Extractor
}

// New creates a Server with an empty history.
func New(opts Options) *Server {
	s := &Server{
		mode:      opts.Mode,
		origins:   opts.AllowOrigins,
		pdfFont:   opts.PDFFontPath,
		log:       opts.Logger,
		now:       opts.Now,
		metrics:   NewMetrics(),
		extractor: extract.New(),
	}
	if s.mode == "" {
		s.mode = core.TaxonomyPhysics
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.history = history.New(opts.HistoryLimit, history.WithClock(s.now))
	return s
}

// History returns the server's history log.
func (s *Server) History() *history.Log {
	return s.history
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(s.log))
	router.Use(s.metrics.Middleware())
	router.Use(CORS(s.origins))

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/taxonomies", s.handleTaxonomies)
		api.POST("/convert", s.handleConvert)

		api.GET("/history", s.handleListHistory)
		api.GET("/history/:id", s.handleGetHistory)
		api.GET("/history/:id/export", s.handleExportHistory)
		api.DELETE("/history", s.handleClearHistory)
	}
	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr), zap.String("mode", string(s.mode)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
