package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/track"
)

func build(t *testing.T) (*track.Track, *track.Path) {
	t.Helper()
	p := track.NewPath(track.Pt(0, 0))
	p.AddSegment(track.Pt(6, 6))
	p.AddSegment(track.Pt(12, 0))
	p.SetClosed(true)
	p.SetAutoSetControlPoints(true)
	s := track.DefaultSettings()
	s.Spacing = 0.25
	tr, err := track.Build(p, s)
	require.NoError(t, err)
	return tr, p
}

func pixel(img *image.RGBA, pt track.Point) color.RGBA {
	return img.RGBAAt(int(pt.X), int(pt.Y))
}

// assertColor allows for rounding in coverage computation and scaling.
func assertColor(t *testing.T, want color.Color, got color.RGBA) {
	t.Helper()
	w := color.RGBAModel.Convert(want).(color.RGBA)
	d := func(a, b uint8) int { return max(int(a)-int(b), int(b)-int(a)) }
	if d(w.R, got.R) > 2 || d(w.G, got.G) > 2 || d(w.B, got.B) > 2 || d(w.A, got.A) > 2 {
		t.Errorf("got color %v, want %v", got, w)
	}
}

func TestRender(t *testing.T) {
	tr, p := build(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 128, 96
	opts.Margin = 4
	img, err := Render(tr, p, opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 96), img.Bounds())

	aff := Fit(tr, p, opts)
	assert.Equal(t, opts.Background, img.RGBAAt(0, 0))
	// A sample away from the anchors lies on the road.
	sample := tr.Points[3*len(tr.Points)/4].Transform(aff)
	assertColor(t, opts.Road, pixel(img, sample))
	for _, a := range p.AnchorPoints() {
		assert.Equal(t, opts.Anchor, pixel(img, a.Transform(aff)))
	}

	// The track fits inside the margin.
	bbox := tr.Mesh.BoundingBox()
	c0 := track.Pt(bbox.X0, bbox.Y1).Transform(aff)
	c1 := track.Pt(bbox.X1, bbox.Y0).Transform(aff)
	assert.GreaterOrEqual(t, c0.X, 4-1e-9)
	assert.GreaterOrEqual(t, c0.Y, 4-1e-9)
	assert.LessOrEqual(t, c1.X, 124+1e-9)
	assert.LessOrEqual(t, c1.Y, 92+1e-9)
}

func TestRenderInfield(t *testing.T) {
	tr, p := build(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 128, 128
	opts.AnchorSize = 0

	aff := Fit(tr, p, opts)
	// The middle of the triangle spanned by the anchors is enclosed by the
	// path but far from the road.
	inside := track.Pt(6, 2).Transform(aff)

	img, err := Render(tr, p, opts)
	require.NoError(t, err)
	assertColor(t, opts.Infield, pixel(img, inside))

	opts.Infield = nil
	img, err = Render(tr, p, opts)
	require.NoError(t, err)
	assertColor(t, opts.Background, pixel(img, inside))
}

func TestRenderSupersample(t *testing.T) {
	tr, p := build(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	opts.Margin = 4
	opts.Supersample = 3
	img, err := Render(tr, p, opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	assertColor(t, opts.Background, img.RGBAAt(0, 0))
}

func TestRenderErrors(t *testing.T) {
	tr, p := build(t)
	opts := DefaultOptions()
	opts.Width = 0
	_, err := Render(tr, p, opts)
	assert.ErrorIs(t, err, track.ErrInvalidArgument)

	opts = DefaultOptions()
	opts.Margin = 256
	_, err = Render(tr, p, opts)
	assert.ErrorIs(t, err, track.ErrInvalidArgument)

	_, err = Render(nil, p, DefaultOptions())
	assert.ErrorIs(t, err, track.ErrInvalidArgument)
}

func TestRenderEmptyTrack(t *testing.T) {
	p := track.NewPath(track.Pt(0, 0))
	s := track.DefaultSettings()
	s.Spacing = 100
	tr, err := track.Build(p, s)
	require.NoError(t, err)
	img, err := Render(tr, p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions().Background, img.RGBAAt(256, 256))
}

func TestWritePNG(t *testing.T) {
	tr, p := build(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 32, 32
	opts.Margin = 2
	img, err := Render(tr, p, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	dec, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), dec.Bounds())

	fn := filepath.Join(t.TempDir(), "track.png")
	require.NoError(t, SavePNG(fn, img))
}
