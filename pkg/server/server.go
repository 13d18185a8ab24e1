package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"

	"github.com/willbeason/mandelbrot/pkg/config"
	"github.com/willbeason/mandelbrot/pkg/output"
	"github.com/willbeason/mandelbrot/pkg/parse"
	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/render"
)

var ErrTooLarge = errors.New("requested image too large")

// Request asks for one rendered image. Fields use the same syntax as the command line.
type Request struct {
	Pixels     string `json:"pixels"`
	UpperLeft  string `json:"upper_left"`
	LowerRight string `json:"lower_right"`
}

// Server renders images on demand over HTTP and websocket.
//
//	GET /render.png?pixels=WxH&ul=RE,IM&lr=RE,IM
//	GET /ws
type Server struct {
	cfg config.Server
	mux *http.ServeMux
}

func New(cfg config.Server) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /render.png", s.handlePNG)
	s.mux.HandleFunc("GET /ws", s.handleWebsocket)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// workers is the number of bands each image is split into.
func (s *Server) workers() int {
	if w := s.cfg.Concurrency(); w > 0 {
		return w
	}
	return runtime.NumCPU()
}

// resolve parses and checks req against the server's limits.
func (s *Server) resolve(req Request) (plane.Bounds, plane.Rect, error) {
	bounds, err := parse.Bounds(req.Pixels)
	if err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	// Compare per side so huge sides can't overflow Len.
	if bounds.Width > s.cfg.MaxPixels || bounds.Height > s.cfg.MaxPixels || bounds.Len() > s.cfg.MaxPixels {
		return plane.Bounds{}, plane.Rect{}, fmt.Errorf("%w: %v exceeds %d pixels", ErrTooLarge, bounds, s.cfg.MaxPixels)
	}

	rect, err := parse.Rect(req.UpperLeft, req.LowerRight)
	if err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	return bounds, rect, nil
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	bounds, rect, err := s.resolve(Request{
		Pixels:     q.Get("pixels"),
		UpperLeft:  q.Get("ul"),
		LowerRight: q.Get("lr"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pixels := make([]byte, bounds.Len())

	err = render.Parallel(r.Context(), pixels, bounds, rect, s.workers())
	if err != nil {
		// The client went away.
		log.Printf("render %v for %s: %v", bounds, r.RemoteAddr, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")

	err = output.WritePNG(w, pixels, bounds)
	if err != nil {
		log.Printf("write png to %s: %v", r.RemoteAddr, err)
	}
}
