package client

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/config"
	handlerhttp "github.com/keycapdesign/gradgo-app-sub000/internal/handler/http"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/netmon"
	"github.com/keycapdesign/gradgo-app-sub000/internal/service"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/internal/workers"
)

// App is the station agent runtime. It owns the local storage, the backend
// adapter, the connectivity monitor, the service layer and the control API
// server, and runs them until a stop signal arrives.
type App struct {
	cfg      *config.AgentConfig
	services *service.Services
	monitor  *netmon.Monitor
	control  *http.Server
	log      *logger.Logger
}

// NewApp assembles the agent from its configuration: local SQLite storage,
// backend HTTP adapter, session cache, connectivity monitor, services and
// the control API handler.
func NewApp() (*App, error) {
	cfg, err := config.GetAgentConfig()
	if err != nil {
		return nil, fmt.Errorf("load agent config: %w", err)
	}

	log := logger.NewAgentLogger("agent")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		HashKey: cfg.App.HashKey,
		Timeout: cfg.Backend.RequestTimeout,
		Token:   cfg.Backend.Token,
	})

	monitor := netmon.NewMonitor(serverAdapter, cfg.Workers.ProbeInterval, log)
	sessionCache := cache.NewMemoryCache()

	services := service.NewServices(serverAdapter, storages, sessionCache, monitor, cfg.Workers, log)

	handler := handlerhttp.NewHandler(services, log)
	control := &http.Server{
		Addr:    cfg.Control.HTTPAddress,
		Handler: handler.Init(),
	}

	return &App{
		cfg:      cfg,
		services: services,
		monitor:  monitor,
		control:  control,
		log:      log,
	}, nil
}

// Run starts the connectivity monitor, the auto-sync controller and the
// control API server, then blocks until SIGINT/SIGTERM. Shutdown drains the
// control server gracefully before returning.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	controlDone := make(chan error, 1)
	go func() {
		a.log.Info().Str("address", a.control.Addr).Msg("control API listening")
		if err := a.control.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			controlDone <- err
			return
		}
		controlDone <- nil
	}()

	jobs := workers.NewWorkers(a.monitor, a.services.AutoSync)
	workersDone := make(chan struct{})
	go func() {
		jobs.Run(ctx)
		close(workersDone)
	}()

	select {
	case <-ctx.Done():
	case err := <-controlDone:
		if err != nil {
			stop()
			<-workersDone
			return fmt.Errorf("control API server: %w", err)
		}
	}

	a.log.Info().Msg("shutting down")

	if err := a.control.Shutdown(context.Background()); err != nil {
		a.log.Error().Err(err).Msg("control API shutdown")
	}
	a.monitor.Stop()
	<-workersDone

	a.log.Info().Msg("agent stopped gracefully")

	return nil
}
