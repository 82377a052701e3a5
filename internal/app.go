package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"grailhunter/internal/controllers"
	"grailhunter/internal/providers"
	"grailhunter/internal/statistic/interfaces"
	"grailhunter/internal/structures"
	"net/http"
	"strconv"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
	health    *controllers.HealthController
	scheduler interfaces.SchedulerInterface
	conf      *structures.Config
	logger    providers.Logger
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	instrumentedAPI := providers.MetricsMiddleware(metrics, router.GetRoutes(), router.Handler())

	// Infrastructure endpoints stay outside the API guard.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:              conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:           providers.RequestIDMiddleware(logger, mux),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      upstreamWriteTimeout(conf),
			IdleTimeout:       60 * time.Second,
		},
		health:    healthController,
		scheduler: scheduler,
		conf:      conf,
		logger:    logger,
	}
}

// upstreamWriteTimeout leaves room for the slowest model call.
func upstreamWriteTimeout(conf *structures.Config) time.Duration {
	return max(conf.GenAI.Timeout, 10*time.Second) + 5*time.Second
}

// Run restores saved usage, serves until ctx is cancelled, then drains and
// persists.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if err := a.scheduler.Restore(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	a.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.scheduler.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	a.health.SetDraining()
	a.scheduler.Stop()

	timeout := a.conf.WebServer.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := a.scheduler.Persist(); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// Close flushes log files. Call it after Run returns.
func (a *App) Close() {
	a.logger.Close()
}
