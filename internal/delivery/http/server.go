// Package http provides the HTTP server of the portal.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"portal/config"
	"portal/internal/delivery"
	"portal/internal/delivery/http/middleware"
	"portal/internal/delivery/http/router"
	"portal/internal/delivery/http/validator"
	"portal/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

// Server is the HTTP server of the portal.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *slog.Logger
}

// ServerParams contains the dependencies needed for creating the server.
type ServerParams struct {
	fx.In

	Lifecycle           fx.Lifecycle
	Config              *config.Config
	Logger              *slog.Logger
	RequestIDMiddleware *middleware.RequestIDMiddleware
	ErrorMiddleware     *middleware.ErrorMiddleware
	RouterParams        router.RouterParams
}

// NewServer creates the echo instance, wires the middleware chain and
// registers the routes.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	pageRenderer, err := newRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "create renderer")
	}
	e.Renderer = pageRenderer
	e.Validator = validator.New()
	e.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	e.Use(slogecho.New(params.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(params.RequestIDMiddleware.Process)

	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	router.NewRouter(e, params.RouterParams)

	e.Server.ReadTimeout = params.Config.HTTP.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = params.Config.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = params.Config.HTTP.Timeouts.WriteTimeout
	e.Server.IdleTimeout = params.Config.HTTP.Timeouts.IdleTimeout

	server := &Server{
		echo:   e,
		cfg:    params.Config,
		logger: params.Logger,
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	})

	return server, nil
}

// Serve starts the HTTP server and blocks until it stops.
func (s *Server) Serve(_ context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.HTTP.Port)
	s.logger.Info("starting http server", slog.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "start http server")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")

	return errors.Wrap(s.echo.Shutdown(ctx), "shutdown http server")
}
