package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/history"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/theme"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	"github.com/frahmantamala/salary-calculator/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server exposing the calculator, employees and history as a JSON API`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withDependencies(ctx, startHTTPServer)
	},
}

func setupRoutes(deps *Dependencies) *chi.Mux {
	base := transport.NewBaseHandler(deps.Logger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:      rest.NewHealthHandler(base, deps.Store, deps.Config.Storage.Driver),
		Auth:        auth.NewHandler(deps.Auth),
		Roles:       auth.NewRoleAuthorization(deps.Logger),
		Calculation: salary.NewHandler(base, deps.Calculator),
		History:     history.NewHandler(base, deps.History),
		Employee:    employee.NewHandler(base, deps.Employees),
		Theme:       theme.NewHandler(base, deps.Theme),
	}, deps.Logger)

	return router
}

func startHTTPServer(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           setupRoutes(deps),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Logger.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	deps.Logger.Info("Server stopped")
	return nil
}
