package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/bcreport-go/internal/server"
	"github.com/ukaji3/bcreport-go/internal/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var addr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report generator over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := server.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = log

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Driver != "" {
		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Store = st
		log.Info("run history enabled", zap.String("driver", cfg.Store.Driver))
	}

	srv := server.NewServer(opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	status("Listening on %s (swagger at /swagger/index.html)", cfg.Server.Addr)

	<-ctx.Done()
	warn("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
