package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/http/server"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

func main() {
	// .env es opcional; en producción las vars vienen del entorno real.
	_ = godotenv.Load()

	var (
		configPath string
		role       string
		addr       string
	)

	root := &cobra.Command{
		Use:   "mercadito",
		Short: "API de catálogo de productos con cuentas de usuario",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el listener HTTP (product, auth o ambos)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Los flags ganan sobre archivo y entorno.
			if role != "" {
				cfg.Server.Role = role
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&configPath, "config", "", "Ruta al YAML de configuración (opcional)")
	serveCmd.Flags().StringVar(&role, "role", "", "Rol del listener: product|auth|all")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Dirección de escucha (ej. :5000)")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "mercadito-" + cfg.Server.Role,
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := server.BuildHandler(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log := logger.With(logger.Component("server"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening",
			logger.Any("addr", cfg.Server.Addr),
			logger.Any("role", cfg.Server.Role),
			logger.Driver(cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", logger.Err(err))
		return err
	}
	log.Info("bye")
	return nil
}
