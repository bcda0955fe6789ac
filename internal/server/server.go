// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes conversion and sample generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Setup configures the gin engine with all routes and middleware.
func Setup(h *Handler, cfg types.ServeConfig, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(log))
	r.Use(BodyLimit(cfg.MaxBodyBytes))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/formats", h.Formats)
	v1.POST("/convert", h.Convert)
	v1.GET("/sample", h.Sample)

	return r
}

// NewRouter wires a Handler over the default registry and returns the engine.
func NewRouter(cfg types.Config, log logrus.FieldLogger) *gin.Engine {
	reg := codec.Default()
	h := NewHandler(convert.New(reg), reg, cfg.Convert, log)
	return Setup(h, cfg.Serve, log)
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg types.Config, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           NewRouter(cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Serve.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", cfg.Serve.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
