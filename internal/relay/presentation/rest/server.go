package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/presentation/rest/handlers"
	"gopkg.in/validator.v2"
)

// SubmissionPath is where confessions are posted
const SubmissionPath = "/api/send"

type Server struct {
	submissionService core.SubmissionService
	logger            *slog.Logger
	addr              string
	version           string
	corsAllowedOrigin string
	readTimeout       time.Duration
	writeTimeout      time.Duration
	shutdownTimeout   time.Duration

	router     *gin.Engine
	httpServer *http.Server
}

type ServerConfig struct {
	SubmissionService core.SubmissionService `validate:"nonnil"`
	Logger            *slog.Logger           `validate:"nonnil"`
	Addr              string                 `validate:"nonzero"`
	Version           string
	CORSAllowedOrigin string
	ReadTimeout       time.Duration `validate:"nonzero"`
	WriteTimeout      time.Duration `validate:"nonzero"`
	ShutdownTimeout   time.Duration `validate:"nonzero"`
}

func NewServer(config ServerConfig) (*Server, error) {
	if err := validator.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	s := &Server{
		submissionService: config.SubmissionService,
		logger:            config.Logger,
		addr:              config.Addr,
		version:           config.Version,
		corsAllowedOrigin: config.CORSAllowedOrigin,
		readTimeout:       config.ReadTimeout,
		writeTimeout:      config.WriteTimeout,
		shutdownTimeout:   config.ShutdownTimeout,
		router:            gin.New(),
	}
	s.setup()

	return s, nil
}

// Handler exposes the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "Starting HTTP server",
			"address", s.addr,
			"version", s.version,
		)
		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)

	case sig := <-shutdown:
		s.logger.WarnContext(ctx, "Shutdown signal received", "signal", sig.String())
		return s.gracefulShutdown(ctx)

	case <-ctx.Done():
		s.logger.InfoContext(ctx, "Context cancelled, shutting down server")
		return s.gracefulShutdown(ctx)
	}
}

func (s *Server) setup() {
	// Recovery runs inside Logging so recovered panics are logged as 500
	s.router.Use(RequestID(), Logging(s.logger), Recovery(s.logger), Security())
	if s.corsAllowedOrigin != "" {
		s.router.Use(CORS(s.corsAllowedOrigin))
	}

	s.router.GET("/", handlers.NewHealthHandler(s.submissionService, s.version).Handle)

	submissionHandler := handlers.NewSubmissionHandler(s.submissionService, s.logger)
	s.router.Any(SubmissionPath, submissionHandler.Handle)

	// Any only covers gin's built-in methods; extension methods such as
	// PROPFIND fall through to NoRoute and still need a 405.
	s.router.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == SubmissionPath {
			submissionHandler.Handle(c)
		}
	})
}

func (s *Server) gracefulShutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.ErrorContext(ctx, "Error during server shutdown", "error", err)

		if closeErr := s.httpServer.Close(); closeErr != nil {
			s.logger.ErrorContext(ctx, "Error during server force close", "error", closeErr)
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Server shutdown completed successfully")
	return nil
}
