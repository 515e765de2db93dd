package track

import (
	"fmt"
	"math"
)

const maxDivisions = math.MaxInt32

// EvenlySpacedPoints walks the path and returns points that are spacing
// apart, measured along the curve. The first point is the first anchor. The
// distance from the last point to the end of the path may be shorter than
// spacing.
//
// Every segment is sampled at ⌈l·resolution·10⌉ evenly distributed values of
// t, where l is the segment's [CubicBez.EstimatedLength]. Distances are
// accumulated between consecutive samples; once they exceed spacing, the new
// point is placed on the chord between the two samples, moved back from the
// later sample by the overshoot. The overshoot carries over to the next
// point. A resolution of 1 is a reasonable default.
//
// spacing and resolution must be positive and finite; otherwise an error
// wrapping [ErrInvalidArgument] is returned. The same error is returned if a
// segment would need more than [math.MaxInt32] samples.
func (p *Path) EvenlySpacedPoints(spacing, resolution float64) ([]Point, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: spacing must be positive, got %g", ErrInvalidArgument, spacing)
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: resolution must be positive, got %g", ErrInvalidArgument, resolution)
	}

	out := []Point{p.points[0]}
	prev := p.points[0]
	var dist float64
	for seg := range p.Segments() {
		divisions := math.Ceil(seg.EstimatedLength() * resolution * 10)
		if !(divisions <= maxDivisions) {
			return nil, fmt.Errorf("%w: segment needs %g samples at resolution %g", ErrInvalidArgument, divisions, resolution)
		}
		for _, pt := range seg.Steps(int(divisions)) {
			dist += prev.Distance(pt)
			for dist >= spacing {
				overshoot := dist - spacing
				if overshoot >= dist {
					return nil, fmt.Errorf("%w: spacing %g is below the precision of distance %g", ErrInvalidArgument, spacing, dist)
				}
				even := pt.Translate(prev.Sub(pt).Normalize().Mul(overshoot))
				out = append(out, even)
				dist = overshoot
				prev = even
			}
			prev = pt
		}
	}
	return out, nil
}
