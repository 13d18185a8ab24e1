package preview

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/render"
)

// upperHalf paints the top half of a cell in the foreground colour
// and the bottom half in the background colour.
const upperHalf = '▀'

// Bounds is the image size which fills a screen w cells wide and h cells tall.
// Each cell shows two vertically stacked pixels.
func Bounds(w, h int) plane.Bounds {
	return plane.Bounds{Width: w, Height: 2 * h}
}

func gray(v byte) tcell.Color {
	return tcell.NewRGBColor(int32(v), int32(v), int32(v))
}

// Style is how a cell showing the pixel intensities top and bottom is drawn.
func Style(top, bottom byte) tcell.Style {
	return tcell.StyleDefault.Foreground(gray(top)).Background(gray(bottom))
}

// Draw paints pixels onto screen two rows per cell, clipped to the screen.
// It does not call Show.
func Draw(screen tcell.Screen, pixels []byte, bounds plane.Bounds) {
	w, h := screen.Size()

	for y := 0; y < h && 2*y < bounds.Height; y++ {
		top := pixels[2*y*bounds.Width : (2*y+1)*bounds.Width]

		var bottom []byte
		if 2*y+1 < bounds.Height {
			bottom = pixels[(2*y+1)*bounds.Width : (2*y+2)*bounds.Width]
		} else {
			// An odd final row has no partner below it.
			bottom = make([]byte, bounds.Width)
		}

		for x := 0; x < w && x < bounds.Width; x++ {
			screen.SetContent(x, y, upperHalf, nil, Style(top[x], bottom[x]))
		}
	}
}

// Run renders rect to fill screen and shows it until the user presses Escape, q, or Ctrl-C,
// or ctx is done. The same rect is re-rendered whenever the screen is resized.
//
// The caller owns screen and must have initialized it.
func Run(ctx context.Context, screen tcell.Screen, rect plane.Rect, workers int) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			// Unblock PollEvent.
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	err := show(ctx, screen, rect, workers)
	if err != nil {
		return err
	}

	for {
		ev := screen.PollEvent()
		if ev == nil {
			// The screen was finalized.
			return ctx.Err()
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			err = show(ctx, screen, rect, workers)
			if err != nil {
				return err
			}
		case *tcell.EventKey:
			if quits(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func quits(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	default:
		return false
	}
}

func show(ctx context.Context, screen tcell.Screen, rect plane.Rect, workers int) error {
	bounds := Bounds(screen.Size())
	if bounds.Validate() != nil {
		// Nothing fits on a zero-sized screen.
		return nil
	}

	pixels := make([]byte, bounds.Len())

	err := render.Parallel(ctx, pixels, bounds, rect, workers)
	if err != nil {
		return err
	}

	screen.Clear()
	Draw(screen, pixels, bounds)
	screen.Show()

	return nil
}
