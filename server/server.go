package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/pipeline"
)

const serviceName = "legal-document-search-api"

type Config struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	Debug           bool // gin debug output and route listing
}

// Server exposes a Pipeline over HTTP and websocket.
type Server struct {
	config   Config
	pipeline *pipeline.Pipeline
	router   *gin.Engine
	logger   *slog.Logger
}

func New(config Config, p *pipeline.Pipeline) *Server {
	if config.Addr == "" {
		config.Addr = ":8000"
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	// Tests pin gin.TestMode before building a server.
	if gin.Mode() != gin.TestMode {
		gin.SetMode(ginMode(config.Debug))
	}

	s := &Server{
		config:   config,
		pipeline: p,
		router:   gin.New(),
		logger:   slog.Default().With("component", "server"),
	}
	s.routes()
	return s
}

func ginMode(debug bool) string {
	if debug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// middleware runs outermost first; the request logger wraps Recovery so
// panicking requests are still logged with their final status.
func (s *Server) middleware() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		requestLogger(s.logger),
		gin.Recovery(),
		cors(s.config.AllowedOrigins),
	}
}

func (s *Server) routes() {
	s.router.Use(s.middleware()...)

	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	s.router.POST("/generate", s.handleGenerate)

	documents := s.router.Group("/documents")
	{
		documents.GET("", s.handleListDocuments)
		documents.POST("", s.handleCreateDocument)
		documents.POST("/import", s.handleImportDocument)
		documents.GET("/:id", s.handleGetDocument)
	}

	s.router.GET("/queries", s.handleQueryHistory)
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
