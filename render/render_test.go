package render_test

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manahunt/field"
	"github.com/katalvlaran/manahunt/hunt"
	"github.com/katalvlaran/manahunt/render"
)

// grid is a Source where unseen marks an unevaluated cell.
type grid [][]int

const unseen = -1 << 62

func (g grid) Rows() int    { return len(g) }
func (g grid) Columns() int { return len(g[0]) }
func (g grid) Peek(r, c int) (int, bool) {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[0]) || g[r][c] == unseen {
		return 0, false
	}
	return g[r][c], true
}

// TestImage_Gradient checks min is blue, max is red and unseen is black.
func TestImage_Gradient(t *testing.T) {
	g := grid{
		{0, 10},
		{5, unseen},
	}
	img, err := render.Image(g, nil, render.Options{Scale: 1})
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// Cell (r, c) is drawn at x=r, y=cols-1-c.
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 1), "min")
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0), "max")
	assert.Equal(t, color.RGBA{R: 128, B: 128, A: 255}, img.RGBAAt(1, 1), "mid")
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 0), "unevaluated")
}

// TestImage_PathsAndScale checks path overlay and block scaling.
func TestImage_PathsAndScale(t *testing.T) {
	g := grid{
		{1, 2, 3},
		{4, 5, 6},
	}
	paths := [][]hunt.Position{{{Row: 0, Col: 0}, {Row: 1, Col: 2}}, nil, {{Row: 9, Col: 9}}}

	img, err := render.Image(g, paths, render.Options{Scale: 3, Paths: true})
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// (0,0) occupies x 0..2, y 6..8; (1,2) occupies x 3..5, y 0..2.
	for d := 0; d < 3; d++ {
		assert.Equal(t, white, img.RGBAAt(d, 6+d))
		assert.Equal(t, white, img.RGBAAt(3+d, d))
	}
	assert.NotEqual(t, white, img.RGBAAt(0, 0))

	plain, err := render.Image(g, paths, render.Options{Scale: 1})
	require.NoError(t, err)
	assert.NotEqual(t, white, plain.RGBAAt(0, 2))
}

// TestImage_InvalidScale verifies scale validation.
func TestImage_InvalidScale(t *testing.T) {
	_, err := render.Image(grid{{1}}, nil, render.Options{})
	assert.ErrorIs(t, err, render.ErrScale)
}

// TestImage_DoesNotEvaluate renders a partially evaluated field and checks
// coverage is unchanged.
func TestImage_DoesNotEvaluate(t *testing.T) {
	opts := field.DefaultOptions()
	opts.Seed = 5
	f, err := field.New(field.Square(2), opts)
	require.NoError(t, err)
	f.ValueAt(0, 0)
	f.ValueAt(3, 4)

	img, err := render.Image(f, nil, render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.Evaluated())
	assert.Equal(t, f.Rows(), img.Bounds().Dx())
}

// TestSavePNG round-trips through the PNG decoder.
func TestSavePNG(t *testing.T) {
	img, err := render.Image(grid{{1, 2}, {3, 4}}, nil, render.Options{Scale: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.WritePNG(&buf, img))
	dec, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), dec.Bounds())

	path := filepath.Join(t.TempDir(), "field.png")
	require.NoError(t, render.SavePNG(path, img))
	assert.Error(t, render.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img))
}
