package track

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestRibbonMeshOpen(t *testing.T) {
	m := NewRibbonMesh([]Point{Pt(0, 0), Pt(1, 0), Pt(2, 0)}, false, 2)
	diff(t, []f64.Vec3{
		{0, 1, 0}, {0, -1, 0},
		{1, 1, 0}, {1, -1, 0},
		{2, 1, 0}, {2, -1, 0},
	}, m.Vertices)
	diff(t, []uint32{0, 2, 1, 1, 2, 3, 2, 4, 3, 3, 4, 5}, m.Triangles)
	diff(t, []f64.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 0}, {1, 0}}, m.UVs)
	diff(t, 4, m.NumTriangle())
	diff(t, [3]Point{Pt(0, 1), Pt(1, 1), Pt(0, -1)}, m.Triangle(0))
}

func TestRibbonMeshClosed(t *testing.T) {
	sq := []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}
	m := NewRibbonMesh(sq, true, 1)
	diff(t, 8, m.NumVertex())
	diff(t, 24, len(m.Triangles))
	diff(t, []uint32{6, 0, 7, 7, 0, 1}, m.Triangles[18:])

	// The left rail of a counter-clockwise loop is on the inside.
	h := math.Sqrt2 / 4
	diff(t, Pt(h, h), m.Vertex(0), approx)
	diff(t, Pt(-h, -h), m.Vertex(1), approx)
}

func TestRibbonMeshWidth(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0.5), Pt(2, 2), Pt(3, 2.5), Pt(5, 1)}
	for _, closed := range []bool{false, true} {
		m := NewRibbonMesh(pts, closed, 3)
		for i, pt := range pts {
			l, r := m.Vertex(2*i), m.Vertex(2*i+1)
			if d := l.Distance(r); math.Abs(d-3) > 1e-9 {
				t.Errorf("rails at sample %d are %g apart", i, d)
			}
			assertNear(t, l.Midpoint(r), pt, 1e-9)
		}
		for _, idx := range m.Triangles {
			if int(idx) >= m.NumVertex() {
				t.Fatalf("index %d out of range", idx)
			}
		}
	}
}

func TestRibbonMeshUV(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}
	m := NewRibbonMesh(pts, false, 1)
	var left, right []float64
	for i := 0; i < len(m.UVs); i += 2 {
		diff(t, 0.0, m.UVs[i][0])
		diff(t, 1.0, m.UVs[i+1][0])
		left = append(left, m.UVs[i][1])
		right = append(right, m.UVs[i+1][1])
	}
	diff(t, []float64{0, 0.5, 1, 0.5, 0}, left)
	diff(t, left, right)
}

func TestRibbonMeshDegenerate(t *testing.T) {
	for _, closed := range []bool{false, true} {
		m := NewRibbonMesh([]Point{Pt(3, 4)}, closed, 2)
		diff(t, []f64.Vec3{{3, 4, 0}, {3, 4, 0}}, m.Vertices)
		diff(t, []f64.Vec2{{0, 0}, {1, 0}}, m.UVs)
		diff(t, 0, len(m.Triangles))

		m = NewRibbonMesh(nil, closed, 2)
		diff(t, 0, m.NumVertex())
		diff(t, 0, m.NumTriangle())
		diff(t, Rect{}, m.BoundingBox())
	}
}

func TestMeshRails(t *testing.T) {
	m := NewRibbonMesh([]Point{Pt(0, 0), Pt(1, 0), Pt(2, 0)}, false, 2)
	rails := m.Rails(3)
	diff(t, [][]Point{
		{Pt(0, 1), Pt(1, 1), Pt(2, 1)},
		{Pt(0, -1), Pt(1, -1), Pt(2, -1)},
		{Pt(1, 1), Pt(2, 1)},
	}, rails)
	diff(t, 0, len(m.Rails(0)))
	diff(t, [][]Point(nil), m.Rails(-1))
}

func TestMeshTransform(t *testing.T) {
	m := NewRibbonMesh([]Point{Pt(0, 0), Pt(1, 0)}, false, 2)
	m2 := m.Transform(Scale(2, 2))
	diff(t, Pt(2, -2), m2.Vertex(3))
	diff(t, Pt(1, -1), m.Vertex(3))
	diff(t, m.Triangles, m2.Triangles)
	diff(t, Rect{0, -2, 2, 2}, m2.BoundingBox())
}

func TestMeshWriteOBJ(t *testing.T) {
	m := NewRibbonMesh([]Point{Pt(0, 0), Pt(1, 0)}, false, 2)
	sb := &strings.Builder{}
	if err := m.WriteOBJ(sb); err != nil {
		t.Fatal(err)
	}
	want := `v 0 1 0
v 0 -1 0
v 1 1 0
v 1 -1 0
vt 0 0
vt 1 0
vt 0 0
vt 1 0
f 1/1 3/3 2/2
f 2/2 3/3 4/4
`
	diff(t, want, sb.String())
}
