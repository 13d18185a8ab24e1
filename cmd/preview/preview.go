package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/willbeason/mandelbrot/pkg/config"
	"github.com/willbeason/mandelbrot/pkg/parse"
	"github.com/willbeason/mandelbrot/pkg/preview"
)

type previewConfig struct {
	config.Render

	UpperLeft, LowerRight string
}

func (c *previewConfig) Bind(flags *pflag.FlagSet) {
	c.Render.Bind(flags)
	flags.StringVar(&c.UpperLeft, "upper-left", "-2.5,1.25", "upper left corner of the depicted region, RE,IM")
	flags.StringVar(&c.LowerRight, "lower-right", "1,-1.25", "lower right corner of the depicted region, RE,IM")
}

func mainCmd() *cobra.Command {
	cfg := &previewConfig{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the Mandelbrot set in the terminal; press q or Escape to quit",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg, terminalScreen)
		},
	}

	cfg.Bind(cmd.Flags())

	return cmd
}

func terminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	err = screen.Init()
	if err != nil {
		return nil, err
	}

	return screen, nil
}

// runCmd draws on the initialized screen returned by newScreen.
func runCmd(cmd *cobra.Command, cfg *previewConfig, newScreen func() (tcell.Screen, error)) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	err := cfg.Validate()
	if err != nil {
		return err
	}

	rect, err := parse.Rect(cfg.UpperLeft, cfg.LowerRight)
	if err != nil {
		return err
	}

	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	return preview.Run(cmd.Context(), screen, rect, cfg.Concurrency())
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
