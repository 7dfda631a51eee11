// Package app wires settings, transport, services, and stores into the
// runtime context shared by the CLI commands.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/errors"
	"github.com/THANGADHIWAN/focal/internal/logging"
	"github.com/THANGADHIWAN/focal/internal/mockapi"
	"github.com/THANGADHIWAN/focal/internal/observability/metrics"
	"github.com/THANGADHIWAN/focal/internal/service"
	"github.com/THANGADHIWAN/focal/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

// App holds the assembled runtime for one CLI invocation.
type App struct {
	Settings *conf.Settings
	Client   *api.Client
	Services *service.Services
	Stores   *state.Stores

	log  *slog.Logger
	mock *mockapi.Server
}

// New assembles the full stack. With api.mock enabled an in-process mock
// backend is started first and the client pointed at it.
func New(settings *conf.Settings) (*App, error) {
	log := logging.ForService("app")
	if log == nil {
		log = slog.Default().With("service", "app")
	}

	baseURL := settings.API.URL
	var mock *mockapi.Server
	if settings.API.Mock {
		var err error
		mock, err = mockapi.New(mockapi.Options{Seed: settings.Mock.Seed})
		if err != nil {
			return nil, err
		}
		go func() {
			if err := mock.Start(settings.Mock.Listen); err != nil {
				log.Debug("mock server stopped", "error", err)
			}
		}()
		baseURL = "http://" + settings.Mock.Listen + "/api/v1"
	}

	registry := prometheus.NewRegistry()
	apiMetrics, err := metrics.NewAPIMetrics(registry)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Config{
		BaseURL: baseURL,
		Timeout: settings.API.Timeout,
		Metrics: apiMetrics,
	})
	if err != nil {
		if mock != nil {
			_ = mock.Shutdown(context.Background())
		}
		return nil, err
	}

	a := &App{
		Settings: settings,
		Client:   client,
		Services: service.New(client),
		log:      log,
		mock:     mock,
	}
	a.Stores = state.New(a.Services, settings.Metadata.CacheTTL)

	if mock != nil {
		if err := a.waitForMock(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// waitForMock polls until the in-process backend accepts connections.
func (a *App) waitForMock() error {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		ok := a.Client.TestConnection(ctx)
		cancel()
		if ok {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return errors.Newf("mock backend did not become reachable on %s", a.Settings.Mock.Listen).
		Component("app").
		Category(errors.CategoryNetwork).
		Build()
}

// Close releases the transport and stops the in-process mock if running.
func (a *App) Close() {
	a.Stores.Close()
	a.Client.Close()
	if a.mock != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.mock.Shutdown(ctx); err != nil {
			a.log.Warn("mock shutdown failed", "error", err)
		}
	}
}
