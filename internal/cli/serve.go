package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zavlong/etsy-task-tracker/internal/server"
	"github.com/zavlong/etsy-task-tracker/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the completions API backed by SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				opts.cfg.Server.DBPath = dbPath
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return ServeCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config or DATABASE_URL)")
	return cmd
}

// ServeCommand runs the API until ctx is cancelled or the listener fails
func ServeCommand(ctx context.Context, opts *rootOptions) error {
	logger := opts.stderrLogger()
	cfg := opts.cfg.Server

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	srv := server.New(server.Options{Addr: cfg.Addr, AllowedOrigins: cfg.AllowedOrigins}, st, logger)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	if err := srv.Start(&wg, errChan); err != nil {
		return err
	}
	logger.Info("serving week records", "addr", srv.Addr(), "db", cfg.DBPath)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errChan:
		logger.Error("server stopped", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	wg.Wait()

	if serveErr != nil {
		return fmt.Errorf("serve: %w", serveErr)
	}
	return nil
}
