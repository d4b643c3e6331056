// Package server wires the storefront stores to the HTTP API and runs it
// until the process is signalled.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/server/config"
	"github.com/dmitrijs2005/furnistore/internal/server/httpapi"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

const (
	sweepInterval = time.Minute
	visitorIdle   = 30 * time.Minute
)

type App struct {
	config *config.Config
	logger logging.Logger
	sf     *storefront.Storefront
	hub    *httpapi.Hub
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	sf, err := storefront.Open(ctx, c.StorefrontOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("storefront init error: %w", err)
	}

	return &App{config: c, logger: logger, sf: sf, hub: httpapi.NewHub(sf)}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewHandler(app.sf, app.hub, app.logger, httpapi.Options{
		RequestTimeout: app.config.RequestTimeout,
		CookieSecure:   app.config.CookieSecure,
	})
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, h.Routes(), app.config.ShutdownTimeout, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// sweepVisitors drops idle visitors from memory; their state stays in the bridge.
func (app *App) sweepVisitors(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.hub.Sweep(visitorIdle); n > 0 {
				app.logger.Debug(ctx, "idle visitors dropped", "count", n, "active", app.hub.Len())
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.sweepVisitors(ctx)
	}()

	wg.Wait()

	app.hub.Close()
	if err := app.sf.Close(); err != nil {
		app.logger.Error(ctx, "closing storefront", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
