package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivam007kumar/customer-churn/pkg/config"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
	applogger "github.com/Shivam007kumar/customer-churn/pkg/logger"
)

// App encapsulates the relay process lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	return &App{cfg: cfg, httpServer: httpServer, logger: l}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("relay started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.String("events_backend", a.cfg.Events.Backend),
		applogger.Bool("strict_validation", a.cfg.Relay.StrictValidation),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are
// released by the DI cleanup.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
