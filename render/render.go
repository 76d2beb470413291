package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/manahunt/hunt"
)

// ErrScale indicates a non-positive Options.Scale.
var ErrScale = errors.New("render: scale must be at least 1")

// Source is the read-only view of a field needed for drawing.
type Source interface {
	Rows() int
	Columns() int
	Peek(row, col int) (int, bool)
}

// Options controls rasterisation.
//   - Scale: pixels per cell edge (default 1).
//   - Paths: overlay the given agent paths.
type Options struct {
	Scale int
	Paths bool
}

// DefaultOptions returns Scale 1 with paths enabled.
func DefaultOptions() Options {
	return Options{Scale: 1, Paths: true}
}

var pathColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Image draws src and, when opts.Paths is set, every non-empty path.
// Returns ErrScale if opts.Scale < 1.
func Image(src Source, paths [][]hunt.Position, opts Options) (*image.RGBA, error) {
	if opts.Scale < 1 {
		return nil, ErrScale
	}
	rows, cols, s := src.Rows(), src.Columns(), opts.Scale
	img := image.NewRGBA(image.Rect(0, 0, rows*s, cols*s))

	lo, hi, _ := valueRange(src)
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var px color.RGBA
			if v, ok := src.Peek(r, c); ok {
				px = gradient(float64(v-lo) / span)
			} else {
				px = color.RGBA{A: 255}
			}
			fill(img, r, c, cols, s, px)
		}
	}

	if opts.Paths {
		for _, p := range paths {
			for _, pos := range p {
				if pos.Row < 0 || pos.Row >= rows || pos.Col < 0 || pos.Col >= cols {
					continue
				}
				fill(img, pos.Row, pos.Col, cols, s, pathColor)
			}
		}
	}
	return img, nil
}

// valueRange returns the min and max over evaluated cells; ok is false when
// nothing has been evaluated.
func valueRange(src Source) (lo, hi int, ok bool) {
	lo, hi = math.MaxInt, math.MinInt
	for r := 0; r < src.Rows(); r++ {
		for c := 0; c < src.Columns(); c++ {
			v, seen := src.Peek(r, c)
			if !seen {
				continue
			}
			ok = true
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	return lo, hi, ok
}

// gradient maps t in [0,1] from blue (low) to red (high).
func gradient(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(math.Round(255 * t)),
		G: 0,
		B: uint8(math.Round(255 * (1 - t))),
		A: 255,
	}
}

// fill paints the s×s block of cell (r, c); y is flipped so up is up.
func fill(img *image.RGBA, r, c, cols, s int, px color.RGBA) {
	y0 := (cols - 1 - c) * s
	for dy := 0; dy < s; dy++ {
		off := (y0+dy)*img.Stride + r*s*4
		for dx := 0; dx < s; dx++ {
			p := off + dx*4
			img.Pix[p+0] = px.R
			img.Pix[p+1] = px.G
			img.Pix[p+2] = px.B
			img.Pix[p+3] = px.A
		}
	}
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path, replacing any existing file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return WritePNG(f, img)
}
