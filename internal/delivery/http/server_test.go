package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"newsroom/config"
	"newsroom/internal/delivery/http/middleware"
	"newsroom/internal/delivery/http/router"
	"newsroom/internal/delivery/http/router/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewServer_AppliesHTTPTimeouts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.HTTP.Port = 8080
	cfg.HTTP.Timeouts.ReadTimeout = 5 * time.Second
	cfg.HTTP.Timeouts.ReadHeaderTimeout = 2 * time.Second
	cfg.HTTP.Timeouts.WriteTimeout = 10 * time.Second
	cfg.HTTP.Timeouts.IdleTimeout = 120 * time.Second

	params := HTTPParams{
		Lifecycle:       fxtest.NewLifecycle(t),
		Config:          cfg,
		Logger:          logger,
		ErrorMiddleware: middleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			UserHandler:    handler.NewUserHandler(nil, logger),
			AuthMiddleware: middleware.NewAuthMiddleware(nil),
		},
	}

	d, err := NewServer(params)

	require.NoError(t, err)
	srv, ok := d.(*httpServer)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, srv.server.Server.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.server.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, srv.server.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, srv.server.Server.IdleTimeout)
}
