package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbrot/pkg/config"
	"github.com/willbeason/mandelbrot/pkg/server"
)

func mainCmd() *cobra.Command {
	cfg := &config.Server{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render Mandelbrot images over HTTP and websocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg)
		},
	}

	cfg.Bind(cmd.Flags())

	return cmd
}

func runCmd(cmd *cobra.Command, cfg *config.Server) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	err := cfg.Validate()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}

	return serve(cmd.Context(), listener, cfg)
}

// serve handles requests on listener until ctx is done.
func serve(ctx context.Context, listener net.Listener, cfg *config.Server) error {
	srv := &http.Server{
		Handler:           server.New(*cfg),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", listener.Addr())
		errs <- srv.Serve(listener)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}

	err = <-errs
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := mainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
