package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resort/pkg/config"
	"resort/pkg/contracts"
	"resort/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Application owns the HTTP server and its middleware chain. Handlers
// register their routes on the shared router; health routes bypass the
// request-size and content-type middleware so probes stay cheap.
type Application struct {
	cfg    *config.Config
	router *httprouter.Router
	server *http.Server
}

func NewApplication(cfg *config.Config, handlers ...contracts.Handler) *Application {
	router := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	chain := middleware.Recovery(cfg.Log)(
		middleware.RequestLogging(cfg.Log)(
			middleware.RequestTimeout(cfg.RequestTimeout)(
				middleware.ContentTypeValidation(cfg.Log)(
					middleware.MaxRequestSize(int64(cfg.MaxRequestSize))(router),
				),
			),
		),
	)

	return &Application{
		cfg:    cfg,
		router: router,
		server: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      chain,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests within
// the shutdown timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.cfg.Log.Info("HTTP server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Graceful shutdown failed", "error", err)
		return err
	}
	a.cfg.Log.Info("HTTP server stopped")
	return nil
}
