package render

import (
	"errors"
	"fmt"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/plane"
)

// Limit is the iteration budget for every pixel.
// Intensities are 255 minus the escape count, so it must not exceed 255.
const Limit = 255

var ErrBufferSize = errors.New("pixel buffer does not match bounds")

// Intensity is the brightness of a pixel with Result r.
// Presumed members of the set are black; faster escapes are brighter.
func Intensity(r escape.Result) byte {
	count, escaped := r.Count()
	if !escaped {
		return 0
	}
	return byte(Limit - count)
}

// Render writes the intensity of every pixel of an image of size bounds depicting rect
// into pixels, row by row.
//
// pixels must have exactly bounds.Len() elements; otherwise nothing is written and
// an error wrapping ErrBufferSize is returned.
func Render(pixels []byte, bounds plane.Bounds, rect plane.Rect) error {
	err := check(pixels, bounds)
	if err != nil {
		return err
	}

	renderRows(pixels, bounds, rect, Band{Top: 0, Rows: bounds.Height})

	return nil
}

func check(pixels []byte, bounds plane.Bounds) error {
	err := bounds.Validate()
	if err != nil {
		return err
	}

	if len(pixels) != bounds.Len() {
		return fmt.Errorf("%w: got %d pixels for %v, want %d",
			ErrBufferSize, len(pixels), bounds, bounds.Len())
	}

	return nil
}

// renderRows fills out, which holds exactly the rows of band, mapping pixels with the
// full image bounds so the result matches the same rows of a full render.
func renderRows(out []byte, bounds plane.Bounds, rect plane.Rect, band Band) {
	for row := 0; row < band.Rows; row++ {
		renderRow(out[row*bounds.Width:(row+1)*bounds.Width], bounds, rect, band.Top+row)
	}
}

func renderRow(out []byte, bounds plane.Bounds, rect plane.Rect, row int) {
	for column := 0; column < bounds.Width; column++ {
		point := plane.PixelToPoint(bounds, plane.Pixel{Column: column, Row: row}, rect)
		out[column] = Intensity(escape.Time(point, Limit))
	}
}
