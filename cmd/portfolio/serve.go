package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-portfolio/pkg/server"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr        string
		profilePath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser editor with live preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			opts := []server.Option{server.WithLogger(logger)}
			if profilePath != "" {
				p, err := readProfile(profilePath)
				if err != nil {
					return err
				}
				opts = append(opts, server.WithProfile(p))
			}

			srv, err := server.New(server.Config{
				Addr:            cfg.Addr,
				DefaultTemplate: cfg.DefaultTemplate,
				MaxImageBytes:   cfg.MaxImageBytes,
				CORSOrigins:     cfg.CORSOrigins,
			}, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("shutdown", slog.Any("error", err))
					return err
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile document to open in the editor")
	return cmd
}
