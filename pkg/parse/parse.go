package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

var ErrSyntax = errors.New("invalid syntax")

// Pair splits s at the first sep and converts both halves with conv.
// It returns false if sep does not occur in s or either half fails to convert,
// including when a half is empty.
func Pair[T any](s string, sep rune, conv func(string) (T, error)) (T, T, bool) {
	var zero T

	left, right, found := strings.Cut(s, string(sep))
	if !found {
		return zero, zero, false
	}

	l, err := conv(left)
	if err != nil {
		return zero, zero, false
	}

	r, err := conv(right)
	if err != nil {
		return zero, zero, false
	}

	return l, r, true
}

// Ints parses two integers separated by sep.
func Ints(s string, sep rune) (int, int, bool) {
	return Pair(s, sep, strconv.Atoi)
}

// Floats parses two float64s separated by sep.
func Floats(s string, sep rune) (float64, float64, bool) {
	return Pair(s, sep, parseFloat)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Complex parses a point of the complex plane written as "re,im".
func Complex(s string) (complex128, bool) {
	re, im, ok := Floats(s, ',')
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

// Bounds parses image dimensions written as "WIDTHxHEIGHT".
func Bounds(s string) (plane.Bounds, error) {
	width, height, ok := Ints(s, 'x')
	if !ok {
		return plane.Bounds{}, fmt.Errorf("%w: image size %q, want WIDTHxHEIGHT", ErrSyntax, s)
	}

	bounds := plane.Bounds{Width: width, Height: height}

	err := bounds.Validate()
	if err != nil {
		return plane.Bounds{}, err
	}

	return bounds, nil
}

// Rect parses the corners of the depicted region and checks they form a proper rectangle.
func Rect(upperLeft, lowerRight string) (plane.Rect, error) {
	ul, ok := Complex(upperLeft)
	if !ok {
		return plane.Rect{}, fmt.Errorf("%w: upper left corner %q, want RE,IM", ErrSyntax, upperLeft)
	}

	lr, ok := Complex(lowerRight)
	if !ok {
		return plane.Rect{}, fmt.Errorf("%w: lower right corner %q, want RE,IM", ErrSyntax, lowerRight)
	}

	rect := plane.Rect{UpperLeft: ul, LowerRight: lr}

	err := rect.Validate()
	if err != nil {
		return plane.Rect{}, err
	}

	return rect, nil
}
