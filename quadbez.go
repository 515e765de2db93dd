package track

type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// EvaluateQuadratic evaluates the quadratic Bézier with control points a, b
// and c at t, using de Casteljau's reduction: two linear interpolations, then
// one more between their results.
//
// t is not clamped. Values outside of [0, 1] extrapolate the curve.
func EvaluateQuadratic(a, b, c Point, t float64) Point {
	p0 := a.Lerp(b, t)
	p1 := b.Lerp(c, t)
	return p0.Lerp(p1, t)
}

// Eval evaluates the curve at t. See [EvaluateQuadratic].
func (q QuadBez) Eval(t float64) Point {
	return EvaluateQuadratic(q.P0, q.P1, q.P2, t)
}

// Raise the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}
