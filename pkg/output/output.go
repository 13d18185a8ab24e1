package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/render"
)

// Gray wraps pixels as a grayscale image without copying them.
func Gray(pixels []byte, bounds plane.Bounds) (*image.Gray, error) {
	err := bounds.Validate()
	if err != nil {
		return nil, err
	}

	if len(pixels) != bounds.Len() {
		return nil, fmt.Errorf("%w: got %d pixels for %v", render.ErrBufferSize, len(pixels), bounds)
	}

	return &image.Gray{
		Pix:    pixels,
		Stride: bounds.Width,
		Rect:   image.Rect(0, 0, bounds.Width, bounds.Height),
	}, nil
}

// WritePNG encodes pixels to w as a grayscale PNG.
func WritePNG(w io.Writer, pixels []byte, bounds plane.Bounds) error {
	img, err := Gray(pixels, bounds)
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// SavePNG writes pixels to a PNG file at path, creating its directory if needed.
func SavePNG(path string, pixels []byte, bounds plane.Bounds) error {
	// Validate before touching the filesystem.
	img, err := Gray(pixels, bounds)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(f, img)
	if err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
