package server

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/render"
)

// HeaderSize is the length of the header preceding the pixels of each band message:
// the band's top row and its row count, as big-endian uint32s.
const HeaderSize = 8

// Done follows the last band of a rendered image.
type Done struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Bands  int `json:"bands"`
}

// Failure answers a Request which could not be rendered.
type Failure struct {
	Error string `json:"error"`
}

// EncodeBand prefixes the pixels of band b with its header.
func EncodeBand(b render.Band, pixels []byte) []byte {
	msg := make([]byte, HeaderSize, HeaderSize+len(pixels))
	binary.BigEndian.PutUint32(msg[0:4], uint32(b.Top))
	binary.BigEndian.PutUint32(msg[4:8], uint32(b.Rows))
	return append(msg, pixels...)
}

// DecodeBand splits a band message into its Band and pixels.
func DecodeBand(msg []byte) (render.Band, []byte, error) {
	if len(msg) < HeaderSize {
		return render.Band{}, nil, fmt.Errorf("band message of %d bytes is shorter than its header", len(msg))
	}

	b := render.Band{
		Top:  int(binary.BigEndian.Uint32(msg[0:4])),
		Rows: int(binary.BigEndian.Uint32(msg[4:8])),
	}

	return b, msg[HeaderSize:], nil
}

// handleWebsocket answers each Request read from the connection with one binary message per
// band as bands finish, in no particular order, followed by Done.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("websocket connection from %s", r.RemoteAddr)

	ctx := r.Context()
	for {
		var req Request
		err = wsjson.Read(ctx, c, &req)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Printf("read request from %s: %v", r.RemoteAddr, err)
			}
			return
		}

		bounds, rect, err := s.resolve(req)
		if err != nil {
			err = wsjson.Write(ctx, c, Failure{Error: err.Error()})
			if err != nil {
				log.Printf("write failure to %s: %v", r.RemoteAddr, err)
				return
			}
			continue
		}

		err = s.stream(ctx, c, bounds, rect)
		if err != nil {
			log.Printf("stream %v to %s: %v", bounds, r.RemoteAddr, err)
			return
		}
	}
}

type finished struct {
	band   render.Band
	pixels []byte
	err    error
}

// stream renders every band of the image on its own goroutine into its own part of one
// buffer and writes each band to c as soon as it is done.
func (s *Server) stream(ctx context.Context, c *websocket.Conn, bounds plane.Bounds, rect plane.Rect) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pixels := make([]byte, bounds.Len())
	bands := render.Bands(bounds, s.workers())

	results := make(chan finished, len(bands))
	for _, b := range bands {
		start, end := b.Span(bounds.Width)
		out := pixels[start:end]

		go func() {
			if ctx.Err() != nil {
				results <- finished{band: b, err: ctx.Err()}
				return
			}
			err := render.RenderBand(out, bounds, rect, b)
			results <- finished{band: b, pixels: out, err: err}
		}()
	}

	var errs []error
	for range bands {
		f := <-results
		if f.err != nil {
			errs = append(errs, f.err)
			cancel()
			continue
		}
		if len(errs) > 0 {
			continue
		}

		err := c.Write(ctx, websocket.MessageBinary, EncodeBand(f.band, f.pixels))
		if err != nil {
			errs = append(errs, err)
			cancel()
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return wsjson.Write(ctx, c, Done{Width: bounds.Width, Height: bounds.Height, Bands: len(bands)})
}
