package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbrot/pkg/config"
	"github.com/willbeason/mandelbrot/pkg/output"
	"github.com/willbeason/mandelbrot/pkg/parse"
	"github.com/willbeason/mandelbrot/pkg/render"
)

func mainCmd() *cobra.Command {
	cfg := &config.Render{}

	cmd := &cobra.Command{
		Use:   "mandelbrot FILE PIXELS UPPERLEFT LOWERRIGHT",
		Short: "Render the Mandelbrot set to a grayscale PNG",
		Example: `  mandelbrot mandel.png 1000x750 -1.20,0.35 -1,0.20
  mandelbrot --workers 4 out/full.png 1920x1080 -2.5,1.25 1,-1.25`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(cmd, args, cfg)
		},
	}

	cfg.Bind(cmd.Flags())
	// Corners such as -2.5,1.25 would otherwise be read as shorthand flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runCmd(cmd *cobra.Command, args []string, cfg *config.Render) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	err := cfg.Validate()
	if err != nil {
		return err
	}

	path := args[0]

	bounds, err := parse.Bounds(args[1])
	if err != nil {
		return err
	}

	rect, err := parse.Rect(args[2], args[3])
	if err != nil {
		return err
	}

	pixels := make([]byte, bounds.Len())

	start := time.Now()
	if cfg.Sequential {
		err = render.Render(pixels, bounds, rect)
	} else {
		err = render.Parallel(cmd.Context(), pixels, bounds, rect, cfg.Workers)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	err = output.SavePNG(path, pixels, bounds)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rendered %v in %s to %s\n", bounds, elapsed.Round(time.Millisecond), path)

	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
