package track

import (
	"fmt"
	"iter"
	"slices"
)

// Path is an editable chain of cubic Bézier segments.
//
// The points are stored in a flat buffer. Points at indices divisible by
// three are anchors, which the curve passes through; all other points are
// control points. Every anchor is surrounded by its incoming and outgoing
// control point, except for the two ends of an open path. An open path with
// k segments has 3k+1 points. A closed path with k segments has 3k points,
// the last segment wrapping around to the first anchor without repeating it.
//
// A Path is only modified through its methods, which maintain these
// invariants. When auto-setting of control points is enabled, control points
// are derived from the anchors and cannot be moved on their own.
//
// Several edits can be refused, for example deleting the last segment of an
// open path, or moving a control point while control points are set
// automatically. Refused edits leave the path untouched and report false;
// they are not errors. Errors are reserved for indices that don't exist.
//
// A Path is not safe for concurrent use. Derived geometry such as
// [Path.EvenlySpacedPoints] may be computed concurrently as long as no edit
// is in progress.
type Path struct {
	points  []Point
	closed  bool
	autoSet bool
}

// NewPath returns an open path consisting of one S-shaped segment from
// center−⟨1, 0⟩ to center+⟨1, 0⟩.
func NewPath(center Point) *Path {
	return &Path{
		points: []Point{
			center.Translate(Vec(-1, 0)),
			center.Translate(Vec(-0.5, 0.5)),
			center.Translate(Vec(0.5, -0.5)),
			center.Translate(Vec(1, 0)),
		},
	}
}

// IsAnchor reports whether the point at index i is an anchor.
func IsAnchor(i int) bool {
	return i%3 == 0
}

// PointCount returns the number of anchors and control points.
func (p *Path) PointCount() int {
	return len(p.points)
}

// SegmentCount returns the number of cubic segments.
func (p *Path) SegmentCount() int {
	return len(p.points) / 3
}

// IsClosed reports whether the last anchor connects back to the first.
func (p *Path) IsClosed() bool {
	return p.closed
}

// AutoSetControlPoints reports whether control points are derived from the
// anchors.
func (p *Path) AutoSetControlPoints() bool {
	return p.autoSet
}

// At returns the point at index i.
func (p *Path) At(i int) (Point, error) {
	if err := p.checkPoint(i); err != nil {
		return Point{}, err
	}
	return p.points[i], nil
}

// Points returns a copy of all points.
func (p *Path) Points() []Point {
	return slices.Clone(p.points)
}

// AnchorPoints returns a copy of the anchors, in order.
func (p *Path) AnchorPoints() []Point {
	out := make([]Point, 0, len(p.points)/3+1)
	for i := 0; i < len(p.points); i += 3 {
		out = append(out, p.points[i])
	}
	return out
}

// PointsInSegment returns the anchor, its outgoing control point, the
// incoming control point of the next anchor, and the next anchor of segment
// i. The last segment of a closed path ends in the first anchor.
func (p *Path) PointsInSegment(i int) ([4]Point, error) {
	if err := p.checkSegment(i); err != nil {
		return [4]Point{}, err
	}
	return p.segment(i).Points(), nil
}

// Segment returns segment i as a curve. See [Path.PointsInSegment].
func (p *Path) Segment(i int) (CubicBez, error) {
	if err := p.checkSegment(i); err != nil {
		return CubicBez{}, err
	}
	return p.segment(i), nil
}

// Segments returns an iterator over all segments.
func (p *Path) Segments() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		for i := range p.SegmentCount() {
			if !yield(p.segment(i)) {
				return
			}
		}
	}
}

// Elements returns the path as drawing commands, suitable for [WriteSVG].
func (p *Path) Elements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(p.points[0])) {
			return
		}
		for seg := range p.Segments() {
			if !yield(CubicTo(seg.P1, seg.P2, seg.P3)) {
				return
			}
		}
		if p.closed {
			yield(ClosePath())
		}
	}
}

// Length returns the arc length of the whole path.
func (p *Path) Length(accuracy float64) float64 {
	var l float64
	for seg := range p.Segments() {
		l += seg.Arclen(accuracy)
	}
	return l
}

// BoundingBox returns the bounding box of all points. It contains the curve.
func (p *Path) BoundingBox() Rect {
	return BoundingBoxOf(p.points)
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		points:  slices.Clone(p.points),
		closed:  p.closed,
		autoSet: p.autoSet,
	}
}

// SetClosed opens or closes the path.
//
// Closing the path adds two control points, mirroring the control points of
// the last and first anchor through their anchors. Opening the path removes
// them again. With automatic control points, the control points of the
// affected anchors are recomputed.
func (p *Path) SetClosed(closed bool) {
	if p.closed == closed {
		return
	}
	p.closed = closed
	if closed {
		n := len(p.points)
		p.points = append(p.points,
			p.points[n-1].Mirror(p.points[n-2]),
			p.points[0].Mirror(p.points[1]))
		if p.autoSet {
			p.autoSetAnchorControlPoints(0)
			p.autoSetAnchorControlPoints(len(p.points) - 3)
		}
	} else {
		p.points = p.points[:len(p.points)-2]
		if p.autoSet {
			// The anchors next to the ends may have had the same neighbour
			// on both sides.
			p.autoSetAllControlPoints()
		}
	}
}

// SetAutoSetControlPoints enables or disables automatic control points.
// Enabling it immediately recomputes every control point. Disabling it
// keeps the current positions.
func (p *Path) SetAutoSetControlPoints(auto bool) {
	if p.autoSet == auto {
		return
	}
	p.autoSet = auto
	if auto {
		p.autoSetAllControlPoints()
	}
}

// AddSegment extends the path by one segment ending in anchor.
//
// The new anchor's incoming control point lies halfway between the previous
// anchor's outgoing control point and anchor. For an open path, that outgoing
// control point is created by mirroring the previous incoming one. For a
// closed path, the segment is inserted before the segment that wraps around
// to the first anchor.
//
// It returns an error wrapping [ErrInvalidArgument] if anchor isn't finite.
func (p *Path) AddSegment(anchor Point) error {
	if err := checkFinite(anchor); err != nil {
		return err
	}
	var ai int
	if p.closed {
		n := len(p.points)
		in := p.points[n-2].Midpoint(anchor)
		p.points = slices.Insert(p.points, n-1, in, anchor, anchor.Mirror(in))
		ai = n
	} else {
		n := len(p.points)
		out := p.points[n-1].Mirror(p.points[n-2])
		p.points = append(p.points, out, out.Midpoint(anchor), anchor)
		ai = len(p.points) - 1
	}
	if p.autoSet {
		p.autoSetAllAffectedControlPoints(ai)
	}
	return nil
}

// DeleteSegment removes the anchor at anchorIndex, together with its control
// points, joining its neighbouring segments.
//
// A closed path keeps at least two segments and an open path at least one;
// deleting beyond that is refused and DeleteSegment returns false. It returns
// an error if anchorIndex is out of range or not the index of an anchor.
func (p *Path) DeleteSegment(anchorIndex int) (bool, error) {
	if err := p.checkPoint(anchorIndex); err != nil {
		return false, err
	}
	if !IsAnchor(anchorIndex) {
		return false, fmt.Errorf("%w: point %d is not an anchor", ErrInvalidArgument, anchorIndex)
	}
	if !p.canDelete() {
		return false, nil
	}

	switch {
	case anchorIndex == 0:
		if p.closed {
			// The closing control point belongs to the new first anchor.
			p.points[len(p.points)-1] = p.points[2]
		}
		p.points = slices.Delete(p.points, 0, 3)
	case anchorIndex == len(p.points)-1 && !p.closed:
		p.points = slices.Delete(p.points, anchorIndex-2, anchorIndex+1)
	default:
		p.points = slices.Delete(p.points, anchorIndex-1, anchorIndex+2)
	}
	if p.autoSet {
		p.autoSetAllControlPoints()
	}
	return true, nil
}

func (p *Path) canDelete() bool {
	n := p.SegmentCount()
	return n > 2 || (!p.closed && n > 1)
}

// SplitSegment inserts a new anchor at pos into segment segmentIndex.
//
// The new anchor's control points are computed automatically. With
// automatic control points, the neighbouring anchors' control points are
// updated as well. pos must be finite.
func (p *Path) SplitSegment(pos Point, segmentIndex int) error {
	if err := p.checkSegment(segmentIndex); err != nil {
		return err
	}
	if err := checkFinite(pos); err != nil {
		return err
	}
	i := segmentIndex*3 + 2
	p.points = slices.Insert(p.points, i, Point{}, pos, Point{})
	if p.autoSet {
		p.autoSetAllAffectedControlPoints(i + 1)
	} else {
		p.autoSetAnchorControlPoints(i + 1)
	}
	return nil
}

// MovePoint moves the point at index i to pos.
//
// With automatic control points, only anchors can be moved, and the control
// points within one segment of the anchor are recomputed. Moving a control
// point is refused and MovePoint returns false.
//
// Otherwise, moving an anchor drags its control points along. Moving a
// control point turns the anchor's other control point so that both stay on
// a straight line through the anchor; the other control point keeps its
// distance from the anchor.
//
// Non-finite positions are rejected with an error wrapping
// [ErrInvalidArgument].
func (p *Path) MovePoint(i int, pos Point) (bool, error) {
	if err := p.checkPoint(i); err != nil {
		return false, err
	}
	if err := checkFinite(pos); err != nil {
		return false, err
	}
	if p.autoSet && !IsAnchor(i) {
		return false, nil
	}

	delta := pos.Sub(p.points[i])
	p.points[i] = pos

	switch {
	case p.autoSet:
		p.autoSetAllAffectedControlPoints(i)
	case IsAnchor(i):
		if p.reachable(i + 1) {
			p.set(i+1, p.at(i+1).Translate(delta))
		}
		if p.reachable(i - 1) {
			p.set(i-1, p.at(i-1).Translate(delta))
		}
	default:
		// Control points at i%3 == 1 follow their anchor, the others
		// precede it.
		anchor, other := i+1, i+2
		if i%3 == 1 {
			anchor, other = i-1, i-2
		}
		if p.reachable(other) {
			a := p.at(anchor)
			dist := a.Distance(p.at(other))
			dir := a.Sub(pos).Normalize()
			p.set(other, a.Translate(dir.Mul(dist)))
		}
	}
	return true, nil
}

// Transform applies aff to every point. With automatic control points, the
// control points are recomputed from the transformed anchors afterwards.
func (p *Path) Transform(aff Affine) {
	for i, pt := range p.points {
		p.points[i] = pt.Transform(aff)
	}
	if p.autoSet {
		p.autoSetAllControlPoints()
	}
}

func (p *Path) autoSetAllAffectedControlPoints(anchorIndex int) {
	for i := anchorIndex - 3; i <= anchorIndex+3; i += 3 {
		if p.reachable(i) {
			p.autoSetAnchorControlPoints(p.loop(i))
		}
	}
	p.autoSetStartAndEndControls()
}

func (p *Path) autoSetAllControlPoints() {
	for i := 0; i < len(p.points); i += 3 {
		p.autoSetAnchorControlPoints(i)
	}
	p.autoSetStartAndEndControls()
}

// autoSetAnchorControlPoints points the anchor's control points along the
// bisector of the directions to its neighbouring anchors, each at half the
// distance to the neighbour on its side.
func (p *Path) autoSetAnchorControlPoints(anchorIndex int) {
	anchor := p.points[anchorIndex]
	var dir Vec2
	var dist [2]float64

	if p.reachable(anchorIndex - 3) {
		off := p.at(anchorIndex - 3).Sub(anchor)
		dir = dir.Add(off.Normalize())
		dist[0] = off.Hypot()
	}
	if p.reachable(anchorIndex + 3) {
		off := p.at(anchorIndex + 3).Sub(anchor)
		dir = dir.Sub(off.Normalize())
		dist[1] = -off.Hypot()
	}
	dir = dir.Normalize()

	for i := range 2 {
		ci := anchorIndex + i*2 - 1
		if p.reachable(ci) {
			p.set(ci, anchor.Translate(dir.Mul(dist[i]*0.5)))
		}
	}
}

func (p *Path) autoSetStartAndEndControls() {
	if p.closed {
		return
	}
	n := len(p.points)
	p.points[1] = p.points[0].Midpoint(p.points[2])
	p.points[n-2] = p.points[n-1].Midpoint(p.points[n-3])
}

func (p *Path) segment(i int) CubicBez {
	return CubicBez{
		p.points[i*3],
		p.points[i*3+1],
		p.points[i*3+2],
		p.at(i*3 + 3),
	}
}

// loop maps any index onto the buffer, wrapping around in both directions.
func (p *Path) loop(i int) int {
	n := len(p.points)
	return ((i % n) + n) % n
}

func (p *Path) at(i int) Point       { return p.points[p.loop(i)] }
func (p *Path) set(i int, pt Point) { p.points[p.loop(i)] = pt }

// reachable reports whether index i refers to a point, either directly or,
// for closed paths, by wrapping around.
func (p *Path) reachable(i int) bool {
	return p.closed || (i >= 0 && i < len(p.points))
}

func (p *Path) checkPoint(i int) error {
	if i < 0 || i >= len(p.points) {
		return fmt.Errorf("%w: point %d not in [0, %d)", ErrIndexOutOfRange, i, len(p.points))
	}
	return nil
}

func (p *Path) checkSegment(i int) error {
	if n := p.SegmentCount(); i < 0 || i >= n {
		return fmt.Errorf("%w: segment %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func checkFinite(pt Point) error {
	if pt.IsNaN() || pt.IsInf() {
		return fmt.Errorf("%w: position %s is not finite", ErrInvalidArgument, pt)
	}
	return nil
}
