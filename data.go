package track

import (
	"fmt"
	"slices"
)

// PathData is the raw state of a [Path]: its point buffer and its two flags.
// It is all that is needed to reconstruct a path exactly.
type PathData struct {
	Points               []Point
	Closed               bool
	AutoSetControlPoints bool
}

// Data returns a copy of the path's raw state.
func (p *Path) Data() PathData {
	return PathData{
		Points:               slices.Clone(p.points),
		Closed:               p.closed,
		AutoSetControlPoints: p.autoSet,
	}
}

// FromData reconstructs a path from its raw state. Control points are used
// as given, even if d.AutoSetControlPoints is set.
//
// It returns an error wrapping [ErrInvalidArgument] if the number of points
// doesn't form whole segments, or if a point isn't finite.
func FromData(d PathData) (*Path, error) {
	n := len(d.Points)
	switch {
	case d.Closed && (n < 6 || n%3 != 0):
		return nil, fmt.Errorf("%w: closed path needs 3k points with k ≥ 2, got %d", ErrInvalidArgument, n)
	case !d.Closed && (n < 4 || n%3 != 1):
		return nil, fmt.Errorf("%w: open path needs 3k+1 points with k ≥ 1, got %d", ErrInvalidArgument, n)
	}
	for i, pt := range d.Points {
		if err := checkFinite(pt); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return &Path{
		points:  slices.Clone(d.Points),
		closed:  d.Closed,
		autoSet: d.AutoSetControlPoints,
	}, nil
}
