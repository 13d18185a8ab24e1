package render

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

// A Band is a contiguous range of image rows.
type Band struct {
	Top, Rows int
}

// Span is the half-open range of buffer offsets the Band covers in an image width pixels wide.
func (b Band) Span(width int) (start, end int) {
	return b.Top * width, (b.Top + b.Rows) * width
}

func (b Band) String() string {
	return fmt.Sprintf("rows [%d, %d)", b.Top, b.Top+b.Rows)
}

// Bands splits the rows of an image into at most n contiguous, disjoint Bands covering
// every row. Band heights differ by at most one row.
func Bands(bounds plane.Bounds, n int) []Band {
	if n > bounds.Height {
		n = bounds.Height
	}
	if n < 1 {
		n = 1
	}

	bands := make([]Band, 0, n)

	base := bounds.Height / n
	extra := bounds.Height % n

	top := 0
	for i := 0; i < n; i++ {
		rows := base
		if i < extra {
			rows++
		}

		bands = append(bands, Band{Top: top, Rows: rows})
		top += rows
	}

	return bands
}

// RenderBand renders only the rows of b into out, which must hold exactly those rows.
//
// Points are mapped with the full image bounds, so out matches the same span of a buffer
// filled by Render.
func RenderBand(out []byte, bounds plane.Bounds, rect plane.Rect, b Band) error {
	err := bounds.Validate()
	if err != nil {
		return err
	}

	if b.Top < 0 || b.Rows < 0 || b.Top+b.Rows > bounds.Height {
		return fmt.Errorf("%w: %v outside %v", ErrBufferSize, b, bounds)
	}

	if len(out) != b.Rows*bounds.Width {
		return fmt.Errorf("%w: got %d pixels for %v of %v, want %d",
			ErrBufferSize, len(out), b, bounds, b.Rows*bounds.Width)
	}

	renderRows(out, bounds, rect, b)

	return nil
}

// Parallel renders the same image as Render, splitting it into one Band per worker.
// Each worker owns its Band's slice of pixels outright; the only synchronization is
// waiting for all of them to finish.
//
// If workers is not positive, one worker per CPU is used. A single worker renders on the
// calling goroutine. Cancelling ctx stops workers between rows and Parallel returns the
// context's error, leaving pixels partially written.
func Parallel(ctx context.Context, pixels []byte, bounds plane.Bounds, rect plane.Rect, workers int) error {
	err := check(pixels, bounds)
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bands := Bands(bounds, workers)
	if len(bands) == 1 {
		renderRowsContext(ctx, pixels, bounds, rect, bands[0])
		return ctx.Err()
	}

	wg := sync.WaitGroup{}
	wg.Add(len(bands))
	for _, band := range bands {
		start, end := band.Span(bounds.Width)
		out := pixels[start:end]

		go func() {
			defer wg.Done()
			renderRowsContext(ctx, out, bounds, rect, band)
		}()
	}
	wg.Wait()

	return ctx.Err()
}

// renderRowsContext is renderRows, stopping between rows once ctx is done.
func renderRowsContext(ctx context.Context, out []byte, bounds plane.Bounds, rect plane.Rect, band Band) {
	for row := 0; row < band.Rows; row++ {
		if ctx.Err() != nil {
			return
		}
		renderRow(out[row*bounds.Width:(row+1)*bounds.Width], bounds, rect, band.Top+row)
	}
}
