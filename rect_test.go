package track

import "testing"

func TestBoundingBoxOf(t *testing.T) {
	diff(t, Rect{}, BoundingBoxOf(nil))
	diff(t, Rect{1, 2, 1, 2}, BoundingBoxOf([]Point{Pt(1, 2)}))
	diff(t, Rect{-1, -3, 4, 2}, BoundingBoxOf([]Point{Pt(1, 2), Pt(-1, 0), Pt(4, -3)}))
}

func TestRectContains(t *testing.T) {
	r := NewRectFromPoints(Pt(2, 2), Pt(0, 0))
	for _, pt := range []Point{Pt(0, 0), Pt(2, 2), Pt(1, 1)} {
		if !r.Contains(pt) {
			t.Errorf("%v doesn't contain %s", r, pt)
		}
	}
	if r.Contains(Pt(2.5, 1)) {
		t.Errorf("%v contains %s", r, Pt(2.5, 1))
	}
	diff(t, 2.0, r.Width())
	diff(t, 2.0, r.Height())
	diff(t, Pt(1, 1), r.Center())
	diff(t, Rect{-1, -0.5, 3, 2.5}, r.Inflate(1, 0.5))
}
