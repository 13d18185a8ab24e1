package render

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/plane"
)

const wrapsToZero = 1 << (strconv.IntSize / 2)

var (
	detail = plane.Rect{UpperLeft: complex(-1.2, 0.35), LowerRight: complex(-1.0, 0.20)}
	wide   = plane.Rect{UpperLeft: complex(-3.0, 1.5), LowerRight: complex(1.0, -1.5)}
)

func TestIntensity(t *testing.T) {
	tcs := []struct {
		result escape.Result
		want   byte
	}{
		{result: escape.Bounded(), want: 0},
		{result: escape.Escaped(0), want: 255},
		{result: escape.Escaped(1), want: 254},
		{result: escape.Escaped(254), want: 1},
	}

	for _, tc := range tcs {
		t.Run(tc.result.String(), func(t *testing.T) {
			if got := Intensity(tc.result); got != tc.want {
				t.Errorf("Intensity(%v) = %d, want %d", tc.result, got, tc.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	bounds := plane.Bounds{Width: 40, Height: 30}
	pixels := make([]byte, bounds.Len())

	err := Render(pixels, bounds, wide)
	if err != nil {
		t.Fatal(err)
	}

	for row := 0; row < bounds.Height; row++ {
		for column := 0; column < bounds.Width; column++ {
			point := plane.PixelToPoint(bounds, plane.Pixel{Column: column, Row: row}, wide)
			want := Intensity(escape.Time(point, Limit))

			if got := pixels[row*bounds.Width+column]; got != want {
				t.Fatalf("pixel (%d, %d) = %d, want %d", column, row, got, want)
			}
		}
	}

	// The upper left corner -3+1.5i is outside the radius 2 disk.
	if pixels[0] != 255 {
		t.Errorf("upper left = %d, want 255", pixels[0])
	}

	// Pixel (30, 15) maps to the origin, a member of the set.
	if p := plane.PixelToPoint(bounds, plane.Pixel{Column: 30, Row: 15}, wide); p != 0 {
		t.Fatalf("pixel (30, 15) maps to %v, want 0", p)
	}
	if got := pixels[15*bounds.Width+30]; got != 0 {
		t.Errorf("origin = %d, want 0", got)
	}
}

func TestRender_Idempotent(t *testing.T) {
	bounds := plane.Bounds{Width: 64, Height: 48}

	first := make([]byte, bounds.Len())
	second := make([]byte, bounds.Len())
	for i := range second {
		second[i] = 0x7f
	}

	if err := Render(first, bounds, detail); err != nil {
		t.Fatal(err)
	}
	if err := Render(second, bounds, detail); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("renders of identical inputs differ")
	}

	if err := Render(first, bounds, detail); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("rendering into a used buffer changed the result")
	}
}

func TestRender_BufferSize(t *testing.T) {
	bounds := plane.Bounds{Width: 10, Height: 10}

	for _, size := range []int{0, 99, 101, 200} {
		pixels := bytes.Repeat([]byte{42}, size)

		err := Render(pixels, bounds, wide)
		if !errors.Is(err, ErrBufferSize) {
			t.Errorf("Render(%d pixels) = %v, want %v", size, err, ErrBufferSize)
		}

		if !bytes.Equal(pixels, bytes.Repeat([]byte{42}, size)) {
			t.Errorf("Render(%d pixels) wrote to a mismatched buffer", size)
		}
	}
}

func TestRender_Bounds(t *testing.T) {
	tcs := []struct {
		name   string
		bounds plane.Bounds
		pixels []byte
	}{
		{name: "zero width", bounds: plane.Bounds{Width: 0, Height: 10}},
		{name: "zero height", bounds: plane.Bounds{Width: 10, Height: 0}},
		// Len wraps to 0, which must not match an empty buffer.
		{name: "wrapping", bounds: plane.Bounds{Width: wrapsToZero, Height: wrapsToZero}, pixels: []byte{}},
		{name: "overflow", bounds: plane.Bounds{Width: math.MaxInt/3 + 1, Height: 3}, pixels: make([]byte, 16)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := Render(tc.pixels, tc.bounds, wide)
			if !errors.Is(err, plane.ErrBounds) {
				t.Errorf("Render(%v) = %v, want %v", tc.bounds, err, plane.ErrBounds)
			}

			err = Parallel(context.Background(), tc.pixels, tc.bounds, wide, 2)
			if !errors.Is(err, plane.ErrBounds) {
				t.Errorf("Parallel(%v) = %v, want %v", tc.bounds, err, plane.ErrBounds)
			}

			err = RenderBand(tc.pixels, tc.bounds, wide, Band{Top: 0, Rows: 1})
			if !errors.Is(err, plane.ErrBounds) {
				t.Errorf("RenderBand(%v) = %v, want %v", tc.bounds, err, plane.ErrBounds)
			}
		})
	}
}
