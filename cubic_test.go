package track

import (
	"math"
	"testing"
)

func bernstein(c CubicBez, t float64) Point {
	mt := 1 - t
	x := mt*mt*mt*c.P0.X + 3*mt*mt*t*c.P1.X + 3*mt*t*t*c.P2.X + t*t*t*c.P3.X
	y := mt*mt*mt*c.P0.Y + 3*mt*mt*t*c.P1.Y + 3*mt*t*t*c.P2.Y + t*t*t*c.P3.Y
	return Pt(x, y)
}

func TestEvaluateCubic(t *testing.T) {
	const epsilon = 1e-12
	c := CubicBez{Pt(0, -10), Pt(10, 20), Pt(20, -20), Pt(30, 10)}
	for i := range 21 {
		ts := float64(i)/10 - 0.5
		assertNear(t, EvaluateCubic(c.P0, c.P1, c.P2, c.P3, ts), bernstein(c, ts), epsilon)
	}
	diff(t, c.P0, c.Eval(0))
	diff(t, c.P3, c.Eval(1))
}

func TestEvaluateCubicDegenerate(t *testing.T) {
	a := Pt(1.25, -3.5)
	for _, ts := range []float64{-1, 0, 0.3, 0.5, 1, 2} {
		diff(t, a, EvaluateCubic(a, a, a, a, ts))
	}
}

func TestTangent(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	deriv := c.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := c.Tangent(ts)
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
		if l := d.Sub(Vec2(deriv.Eval(ts))).Hypot(); l > 1e-12 {
			t.Errorf("tangent and derivative differ by %g", l)
		}
	}
	diff(t, c.P1.Sub(c.P0).Mul(3), Tangent(c.P0, c.P1, c.P2, c.P3, 0))
	diff(t, c.P3.Sub(c.P2).Mul(3), Tangent(c.P0, c.P1, c.P2, c.P3, 1), approx)
}

func TestCubicBezArclen(t *testing.T) {
	line := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	if l := line.Arclen(1e-9); math.Abs(l-3) > 1e-9 {
		t.Errorf("got arc length %g, want 3", l)
	}

	// A quarter circle approximation has an arc length very close to π/2.
	const k = 0.5519150244935105707435627
	arc := CubicBez{Pt(1, 0), Pt(1, k), Pt(k, 1), Pt(0, 1)}
	if l := arc.Arclen(1e-9); math.Abs(l-math.Pi/2) > 1e-3 {
		t.Errorf("got arc length %g, want about %g", l, math.Pi/2)
	}
}

func TestCubicBezEstimatedLength(t *testing.T) {
	line := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	if l := line.EstimatedLength(); l != 4.5 {
		t.Errorf("got estimate %g, want 4.5", l)
	}
}

func TestCubicBezSteps(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	var ts []float64
	var last Point
	for tt, pt := range c.Steps(4) {
		ts = append(ts, tt)
		last = pt
	}
	diff(t, []float64{0.25, 0.5, 0.75, 1}, ts)
	diff(t, c.P3, last)

	for range c.Steps(0) {
		t.Fatal("zero steps yielded a point")
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	const epsilon = 1e-12
	c := CubicBez{Pt(0, -10), Pt(10, 20), Pt(20, -20), Pt(30, 10)}
	c0, c1 := c.Subdivide()
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, c0.Eval(ts), c.Eval(ts/2), epsilon)
		assertNear(t, c1.Eval(ts), c.Eval(0.5+ts/2), epsilon)
	}
}
