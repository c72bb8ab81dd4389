package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shaxn3/WSTFinalProject/internal/api"
	"github.com/shaxn3/WSTFinalProject/internal/api/middleware"
	"github.com/shaxn3/WSTFinalProject/internal/config"
	"github.com/shaxn3/WSTFinalProject/internal/service/roster"
	"github.com/shaxn3/WSTFinalProject/internal/store/xmlfile"
)

// shutdownTimeout bounds how long in-flight requests may drain on shutdown.
const shutdownTimeout = 5 * time.Second

// application holds the shared application dependencies to simplify
// wiring and shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	roster *roster.Service
	router chi.Router
}

// newApplication wires the store, roster service, handler, and router from
// the loaded configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	memberStore := xmlfile.New(cfg.Store.Path, logger)

	var opts []roster.Option
	if cfg.Store.Locking == "mutex" {
		opts = append(opts, roster.WithGuard())
	}
	rosterService := roster.New(memberStore, logger, opts...)

	memberHandler := api.NewMemberHandler(rosterService, logger)

	r := chi.NewRouter()
	r.Use(middleware.Trace)
	r.Use(middleware.CORS)
	r.HandleFunc("/api/members", memberHandler.Handle)

	return &application{
		config: cfg,
		logger: logger,
		roster: rosterService,
		router: r,
	}
}

// Run starts the HTTP server and blocks until it stops. On SIGINT or
// SIGTERM the server drains in-flight requests before returning.
func (app *application) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		app.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return <-errCh
}
