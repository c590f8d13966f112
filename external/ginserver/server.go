// Package ginserver is the HTTP transport external. It owns the gin engine
// and the http.Server; modules attach their routes during their own Start.
package ginserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dfdavila2/workingWithDataInLWC/config"
	"github.com/dfdavila2/workingWithDataInLWC/core"
)

type Config struct {
	Port         string `env:"HTTP_PORT" default:"8080"`
	ReadTimeout  int    `env:"HTTP_READ_TIMEOUT" default:"30"`
	WriteTimeout int    `env:"HTTP_WRITE_TIMEOUT" default:"30"`
	IdleTimeout  int    `env:"HTTP_IDLE_TIMEOUT" default:"120"`
	Environment  string `env:"ENVIRONMENT" default:"debug"`
}

type Server struct {
	server *http.Server
	engine *gin.Engine
	logger core.Logger
	cfg    Config
}

func New() *Server {
	// gin snapshots the middleware chain when a route is registered, and
	// modules register routes before this external's Setup runs. Logger and
	// Recovery must therefore be attached here, ahead of any registration.
	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	return &Server{
		engine: engine,
	}
}

func (s *Server) Setup(ctx core.AppContext) error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = ctx.Logger()

	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.server = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeout) * time.Second,
	}

	s.logger.Info("http server configured", core.Field{Key: "port", Value: s.cfg.Port})
	return nil
}

// Start serves until the framework context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.server == nil {
		return errors.New("server not initialized")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return errors.New("server not initialized")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http server shutdown error", core.Field{Key: "error", Value: err})
		return err
	}
	s.logger.Info("http server stopped gracefully")
	return nil
}

func (s *Server) Health(ctx context.Context) error {
	if s.server == nil {
		return errors.New("server not initialized")
	}
	return nil
}

// Engine exposes the router for modules to register handlers on.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
