// Package preview renders built tracks into raster images.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"iter"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"honnef.co/go/track"
)

// Options control the appearance of a preview.
type Options struct {
	// Size of the image in pixels.
	Width, Height int
	// Margin in pixels between the track and the image border.
	Margin int
	// Supersample renders at this many times the resolution and scales the
	// result down. Values below 2 disable supersampling.
	Supersample int
	// AnchorSize is the side length in pixels of the squares marking
	// anchors. Zero hides the anchors.
	AnchorSize int

	Background color.Color
	Road       color.Color
	Anchor     color.Color
	// Infield fills the area enclosed by a closed path. Nil disables it.
	Infield color.Color
}

// DefaultOptions returns options for a 512×512 preview.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Margin:      16,
		Supersample: 1,
		AnchorSize:  6,
		Background:  color.RGBA{0x3a, 0x7d, 0x44, 0xff},
		Road:        color.RGBA{0x50, 0x50, 0x50, 0xff},
		Anchor:      color.RGBA{0xd0, 0x20, 0x20, 0xff},
		Infield:     color.RGBA{0x4f, 0x93, 0x58, 0xff},
	}
}

// Fit returns the transform from track space to image space. The track's
// mesh and the path's points are fitted into the image, minus the margin,
// with the y axis pointing down.
func Fit(tr *track.Track, p *track.Path, opts Options) track.Affine {
	bbox := p.BoundingBox()
	if tr.Mesh.NumVertex() > 0 {
		bbox = bbox.Union(tr.Mesh.BoundingBox())
	}
	m := float64(opts.Margin)
	dst := track.Rect{X0: m, Y0: m, X1: float64(opts.Width) - m, Y1: float64(opts.Height) - m}
	return track.FitRect(bbox, dst)
}

// Render draws the road surface of tr, and the anchors of p, the path it was
// built from.
func Render(tr *track.Track, p *track.Path, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", track.ErrInvalidArgument, opts.Width, opts.Height)
	}
	if tr == nil || tr.Mesh == nil {
		return nil, fmt.Errorf("%w: no track", track.ErrInvalidArgument)
	}
	if 2*opts.Margin >= min(opts.Width, opts.Height) {
		return nil, fmt.Errorf("%w: margin %d leaves no room", track.ErrInvalidArgument, opts.Margin)
	}

	ss := max(opts.Supersample, 1)
	aff := Fit(tr, p, opts).ThenScale(float64(ss), float64(ss))
	w, h := opts.Width*ss, opts.Height*ss

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if opts.Infield != nil && p.IsClosed() {
		z := vector.NewRasterizer(w, h)
		addPath(z, track.Transform(p.Elements(), aff))
		z.Draw(img, img.Bounds(), image.NewUniform(opts.Infield), image.Point{})
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	m := tr.Mesh
	for i := range m.NumTriangle() {
		tri := m.Triangle(i)
		for j := range tri {
			tri[j] = tri[j].Transform(aff)
		}
		// Overlapping triangles must not cancel each other out, so all of
		// them are added with the same winding.
		if tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		addPath(z, track.Polyline(tri[:], true))
	}
	z.Draw(img, img.Bounds(), image.NewUniform(opts.Road), image.Point{})

	if s := float64(opts.AnchorSize * ss); s > 0 {
		for _, a := range p.AnchorPoints() {
			c := a.Transform(aff)
			r := image.Rect(
				int(math.Round(c.X-s/2)), int(math.Round(c.Y-s/2)),
				int(math.Round(c.X+s/2)), int(math.Round(c.Y+s/2)))
			draw.Draw(img, r, image.NewUniform(opts.Anchor), image.Point{}, draw.Src)
		}
	}

	if ss > 1 {
		out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.BiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = out
	}

	track.Logger().Debug("rendered preview",
		"width", opts.Width,
		"height", opts.Height,
		"triangles", m.NumTriangle())
	return img, nil
}

// addPath adds the path elements, which must already be in image space, to
// the rasterizer.
func addPath(z *vector.Rasterizer, seq iter.Seq[track.PathElement]) {
	for el := range seq {
		switch el.Kind {
		case track.MoveToKind:
			z.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case track.LineToKind:
			z.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case track.CubicToKind:
			z.CubeTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y))
		case track.ClosePathKind:
			z.ClosePath()
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to filename as PNG.
func SavePNG(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePNG(f, img)
}
