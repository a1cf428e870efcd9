package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/internal/engine"
	"github.com/pacebudget/backend/internal/router"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	table, err := tuning.Load(cfg.TuningFile)
	if err != nil {
		return err
	}
	v1.SetEngine(engine.New(table, cfg.EngineCacheSize))

	if err := connect(); err != nil {
		return err
	}
	defer disconnect()

	url := cfg.URL()
	r, teardown, err := router.Config(url)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(r.Group(url.Path))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("url", url.String()).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Shuts down on a signal and when the server failed to start
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
