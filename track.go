package track

import (
	"fmt"
	"math"
)

// Settings control how a [Path] is turned into a [Track].
type Settings struct {
	// Width of the road surface.
	Width float64
	// Scale is applied uniformly to the mesh and the rails.
	Scale float64
	// Spacing between centerline samples, measured along the curve.
	Spacing float64
	// Resolution of the curve sampling, see [Path.EvenlySpacedPoints].
	Resolution float64
	// Tiling scales the texture repeat count along the track.
	Tiling float64
	// Rails is the number of rail polylines to extract for collision.
	Rails int
}

// DefaultSettings returns settings producing a track of unit width, with a
// sample every unit.
func DefaultSettings() Settings {
	return Settings{
		Width:      1,
		Scale:      1,
		Spacing:    1,
		Resolution: 1,
		Tiling:     1,
		Rails:      2,
	}
}

// Validate returns an error wrapping [ErrInvalidArgument] for the first
// setting that is out of range.
func (s Settings) Validate() error {
	positive := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidArgument, name, v)
		}
		return nil
	}
	for _, err := range []error{
		positive("width", s.Width),
		positive("scale", s.Scale),
		positive("spacing", s.Spacing),
		positive("resolution", s.Resolution),
	} {
		if err != nil {
			return err
		}
	}
	if !(s.Tiling >= 0) || math.IsInf(s.Tiling, 0) {
		return fmt.Errorf("%w: tiling must not be negative, got %g", ErrInvalidArgument, s.Tiling)
	}
	if s.Rails < 0 {
		return fmt.Errorf("%w: rails must not be negative, got %d", ErrInvalidArgument, s.Rails)
	}
	return nil
}

// Track is the geometry derived from a path.
type Track struct {
	// Points are the evenly spaced centerline samples, unscaled.
	Points []Point
	// Mesh is the road surface, scaled by [Settings.Scale].
	Mesh *Mesh
	// Rails are the collision polylines, scaled by [Settings.Scale].
	Rails [][]Point
	// TextureRepeat is how often the texture repeats along the track.
	TextureRepeat int
}

// TextureRepeat returns round(tiling·samples·spacing·0.05), rounding halves
// to even.
func TextureRepeat(tiling float64, samples int, spacing float64) int {
	return int(math.RoundToEven(tiling * float64(samples) * spacing * 0.05))
}

// Build samples the path, builds the road mesh and extracts its rails. The
// path is not modified.
func Build(p *Path, s Settings) (*Track, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pts, err := p.EvenlySpacedPoints(s.Spacing, s.Resolution)
	if err != nil {
		return nil, err
	}
	log := Logger()
	if len(pts) < 2 {
		log.Warn("track has no surface", "samples", len(pts), "spacing", s.Spacing)
	}

	mesh := NewRibbonMesh(pts, p.IsClosed(), s.Width)
	if s.Scale != 1 {
		mesh = mesh.Transform(Scale(s.Scale, s.Scale))
	}
	tr := &Track{
		Points:        pts,
		Mesh:          mesh,
		Rails:         mesh.Rails(s.Rails),
		TextureRepeat: TextureRepeat(s.Tiling, len(pts), s.Spacing),
	}
	log.Debug("built track",
		"segments", p.SegmentCount(),
		"closed", p.IsClosed(),
		"samples", len(pts),
		"vertices", mesh.NumVertex(),
		"triangles", mesh.NumTriangle(),
		"texture_repeat", tr.TextureRepeat)
	return tr, nil
}
