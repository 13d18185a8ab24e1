package plane

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBounds     = errors.New("invalid image bounds")
	ErrDegenerate = errors.New("degenerate plane rectangle")
)

// Bounds is the size of an image in pixels.
type Bounds struct {
	Width, Height int
}

// Len is the number of pixels an image of these Bounds holds.
func (b Bounds) Len() int {
	return b.Width * b.Height
}

// Validate reports bounds which are not positive or whose Len overflows int.
func (b Bounds) Validate() error {
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("%w: %dx%d is not positive", ErrBounds, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/b.Height {
		return fmt.Errorf("%w: %dx%d pixels overflow int", ErrBounds, b.Width, b.Height)
	}
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Pixel is a 0-indexed position in an image. Row increases downward.
type Pixel struct {
	Column, Row int
}

// Rect is the region of the complex plane an image depicts.
//
// UpperLeft must be strictly left of and strictly above LowerRight.
// PixelToPoint does not check this; call Validate at the edges of the program.
type Rect struct {
	UpperLeft, LowerRight complex128
}

// Validate reports rectangles whose corners are not strictly upper left and lower right.
func (r Rect) Validate() error {
	if !(real(r.UpperLeft) < real(r.LowerRight)) {
		return fmt.Errorf("%w: upper left real %g is not less than lower right real %g",
			ErrDegenerate, real(r.UpperLeft), real(r.LowerRight))
	}
	if !(imag(r.UpperLeft) > imag(r.LowerRight)) {
		return fmt.Errorf("%w: upper left imaginary %g is not greater than lower right imaginary %g",
			ErrDegenerate, imag(r.UpperLeft), imag(r.LowerRight))
	}
	return nil
}

// Width is the real extent of the rectangle.
func (r Rect) Width() float64 {
	return real(r.LowerRight) - real(r.UpperLeft)
}

// Height is the imaginary extent of the rectangle.
func (r Rect) Height() float64 {
	return imag(r.UpperLeft) - imag(r.LowerRight)
}

// PixelToPoint returns the point of the complex plane corresponding to pixel
// in an image of size bounds depicting rect.
//
// The result is meaningless if either bounds component is zero.
func PixelToPoint(bounds Bounds, pixel Pixel, rect Rect) complex128 {
	re := real(rect.UpperLeft) + float64(pixel.Column)*rect.Width()/float64(bounds.Width)
	// Rows grow downward but the imaginary axis grows upward.
	im := imag(rect.UpperLeft) - float64(pixel.Row)*rect.Height()/float64(bounds.Height)

	return complex(re, im)
}
