package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/willbeason/mandelbrot/pkg/parse"
	"github.com/willbeason/mandelbrot/pkg/plane"
)

func execute(args ...string) (string, error) {
	cmd := mainCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMandelbrot(t *testing.T) {
	for _, flags := range [][]string{nil, {"--sequential"}, {"-w", "3"}} {
		path := filepath.Join(t.TempDir(), "out", "mandel.png")

		args := append(flags, path, "40x30", "-2.5,1.25", "1,-1.25")
		out, err := execute(args...)
		if err != nil {
			t.Fatalf("%v: %v\n%s", flags, err, out)
		}

		if !strings.Contains(out, "rendered 40x30") {
			t.Errorf("%v: output %q", flags, out)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}

		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}

		if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
			t.Errorf("%v: image is %v, want 40x30", flags, img.Bounds())
		}
	}
}

func TestMandelbrot_BadArgs(t *testing.T) {
	dir := t.TempDir()

	tcs := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "bad size", args: []string{filepath.Join(dir, "a.png"), "40,30", "-2,1", "1,-1"}, wantErr: parse.ErrSyntax},
		{name: "empty half", args: []string{filepath.Join(dir, "b.png"), "40x", "-2,1", "1,-1"}, wantErr: parse.ErrSyntax},
		{name: "bad corner", args: []string{filepath.Join(dir, "c.png"), "40x30", "-2", "1,-1"}, wantErr: parse.ErrSyntax},
		{name: "overflowing size", args: []string{filepath.Join(dir, "e.png"), strconv.Itoa(math.MaxInt/3+1) + "x3", "-2,1", "1,-1"}, wantErr: plane.ErrBounds},
		{name: "inverted", args: []string{filepath.Join(dir, "d.png"), "40x30", "1,-1", "-2,1"}, wantErr: plane.ErrDegenerate},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(tc.args...)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}

			if _, statErr := os.Stat(tc.args[0]); !os.IsNotExist(statErr) {
				t.Errorf("output file written despite error")
			}
		})
	}
}

func TestMandelbrot_ArgCount(t *testing.T) {
	_, err := execute("mandel.png", "40x30")
	if err == nil {
		t.Error("expected an error for missing corners")
	}
}

func TestMandelbrot_FlagsAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandel.png")

	_, err := execute(path, "4x4", "-2,1", "1,-1")
	if err != nil {
		t.Fatalf("negative corners after FILE: %v", err)
	}
}
