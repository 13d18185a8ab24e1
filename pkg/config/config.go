package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const (
	workersFlag    = "workers"
	sequentialFlag = "sequential"
	addrFlag       = "addr"
	maxPixelsFlag  = "max-pixels"
)

var ErrInvalid = errors.New("invalid configuration")

// Render configures how an image is computed.
type Render struct {
	// Workers is the number of row bands rendered concurrently.
	// Zero means one per CPU.
	Workers int

	// Sequential renders the whole image as one band on one goroutine, ignoring Workers.
	Sequential bool
}

// Concurrency is the number of workers to render with: 1 when Sequential, otherwise Workers.
func (r *Render) Concurrency() int {
	if r.Sequential {
		return 1
	}
	return r.Workers
}

func (r *Render) Bind(flags *pflag.FlagSet) {
	flags.IntVarP(&r.Workers, workersFlag, "w", 0,
		"number of row bands to render concurrently; 0 uses one per CPU")
	flags.BoolVar(&r.Sequential, sequentialFlag, false,
		"render the whole image on a single goroutine, ignoring --workers")
}

func (r *Render) Validate() error {
	if r.Workers < 0 {
		return fmt.Errorf("%w: --%s must not be negative, got %d", ErrInvalid, workersFlag, r.Workers)
	}
	return nil
}

// Server configures the render server.
type Server struct {
	Render

	Addr string

	// MaxPixels caps the size of a single requested image.
	MaxPixels int

	ReadHeaderTimeout time.Duration
}

func (s *Server) Bind(flags *pflag.FlagSet) {
	s.Render.Bind(flags)
	flags.StringVar(&s.Addr, addrFlag, ":8080", "address to listen on")
	flags.IntVar(&s.MaxPixels, maxPixelsFlag, 4096*4096, "largest image a client may request, in pixels")
	flags.DurationVar(&s.ReadHeaderTimeout, "read-header-timeout", 5*time.Second, "time allowed to read request headers")
}

func (s *Server) Validate() error {
	err := s.Render.Validate()
	if err != nil {
		return err
	}

	if s.MaxPixels < 1 {
		return fmt.Errorf("%w: --%s must be positive, got %d", ErrInvalid, maxPixelsFlag, s.MaxPixels)
	}
	if s.Addr == "" {
		return fmt.Errorf("%w: --%s must not be empty", ErrInvalid, addrFlag)
	}

	return nil
}
