package transforms

// A Transform iterates a passed point of the complex plane.
type Transform interface {
	Next(z complex128) complex128
}

var _ Transform = Mandelbrot{}
