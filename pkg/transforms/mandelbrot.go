package transforms

// Mandelbrot is the quadratic map z -> z^2 + C.
//
// C belongs to the Mandelbrot set when the orbit of the origin under this map stays bounded.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128) complex128 {
	return z*z + m.C
}
