package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/chromedp/ngdp/config"
	"github.com/chromedp/ngdp/internal/fakeapp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fake enduser application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Decode(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg.Serve)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	return cmd
}

func serve(ctx context.Context, cfg config.ServeConfig) error {
	app := fakeapp.New(
		fakeapp.WithLatency(cfg.Latency),
		fakeapp.WithLogf(logf(&logger, log.DebugLevel)),
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info().Str("addr", "http://"+cfg.Addr+"/").Msg("serving fake enduser application")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
