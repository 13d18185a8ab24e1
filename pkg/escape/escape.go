package escape

import (
	"fmt"

	"github.com/willbeason/mandelbrot/pkg/transforms"
)

// Radius2 is the squared radius of the disk an orbit must leave to escape.
const Radius2 = 4.0

// A Result is either Escaped, carrying the iteration count, or Bounded.
//
// The zero Result is Bounded.
type Result struct {
	count   int
	escaped bool
}

// Escaped is the Result of an orbit which left the disk after being inside it at iteration count.
func Escaped(count int) Result {
	return Result{count: count, escaped: true}
}

// Bounded is the Result of an orbit which never left the disk within the iteration limit.
// Such points are presumed members of the set.
func Bounded() Result {
	return Result{}
}

// Escaped reports whether the orbit left the disk.
func (r Result) Escaped() bool {
	return r.escaped
}

// Count is the escape iteration and true, or zero and false if the orbit was Bounded.
func (r Result) Count() (int, bool) {
	return r.count, r.escaped
}

func (r Result) String() string {
	if !r.escaped {
		return "Bounded"
	}
	return fmt.Sprintf("Escaped(%d)", r.count)
}

// Time iterates the orbit of the origin under z -> z^2 + c at most limit times.
//
// If the orbit leaves the disk of radius 2, Time returns Escaped(i) where i is the
// iteration at whose start the orbit was last inside the disk. Otherwise c is presumed
// to be in the set and Time returns Bounded.
func Time(c complex128, limit int) Result {
	m := transforms.Mandelbrot{C: c}

	z := complex(0, 0)
	for i := 0; i < limit; i++ {
		z = m.Next(z)

		// Squared magnitude avoids a square root; comparing against 4 is comparing |z| against 2.
		if real(z)*real(z)+imag(z)*imag(z) >= Radius2 {
			return Escaped(i)
		}
	}

	return Bounded()
}
