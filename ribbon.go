package track

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/math/f64"
)

// Mesh is an indexed triangle mesh of a ribbon around a polyline.
//
// For every sample of the polyline there are two vertices: the left rail
// vertex at index 2i and the right rail vertex at 2i+1. Vertices are 2D
// points embedded in 3D with a z of zero.
type Mesh struct {
	Vertices []f64.Vec3
	// UVs has one entry per vertex. U is 0 on the left rail and 1 on the
	// right one. V rises from 0 at the first sample to 1 halfway along the
	// polyline and falls back to 0 at the last sample, which keeps the
	// texture seamless on closed tracks.
	UVs []f64.Vec2
	// Triangles holds three vertex indices per triangle.
	Triangles []uint32
}

// NewRibbonMesh builds a strip of the given width centered on pts.
//
// Each sample's forward direction is the sum of the vectors from the
// previous sample and to the next one. The ends of an open polyline only use
// the one neighbour they have, closed polylines wrap around. The rails are
// offset perpendicular to that direction by width/2.
//
// Two triangles connect each pair of consecutive samples. A closed polyline
// gets two more, connecting the last sample to the first. Polylines with
// fewer than two samples produce no triangles; a single sample produces two
// coincident vertices.
func NewRibbonMesh(pts []Point, closed bool, width float64) *Mesh {
	n := len(pts)
	m := &Mesh{
		Vertices: make([]f64.Vec3, 2*n),
		UVs:      make([]f64.Vec2, 2*n),
	}
	if n >= 2 {
		tris := 2 * (n - 1)
		if closed {
			tris += 2
		}
		m.Triangles = make([]uint32, 0, 3*tris)
	}

	nv := uint32(2 * n)
	for i, pt := range pts {
		var fwd Vec2
		if i < n-1 || closed {
			fwd = fwd.Add(pts[(i+1)%n].Sub(pt))
		}
		if i > 0 || closed {
			fwd = fwd.Add(pt.Sub(pts[(i-1+n)%n]))
		}
		left := fwd.Normalize().Perp().Mul(width * 0.5)

		l := pt.Translate(left)
		r := pt.Translate(left.Negate())
		m.Vertices[2*i] = f64.Vec3{l.X, l.Y, 0}
		m.Vertices[2*i+1] = f64.Vec3{r.X, r.Y, 0}

		var percent float64
		if n > 1 {
			percent = float64(i) / float64(n-1)
		}
		v := 1 - math.Abs(2*percent-1)
		m.UVs[2*i] = f64.Vec2{0, v}
		m.UVs[2*i+1] = f64.Vec2{1, v}

		if n >= 2 && (i < n-1 || closed) {
			vi := uint32(2 * i)
			m.Triangles = append(m.Triangles,
				vi, (vi+2)%nv, vi+1,
				vi+1, (vi+2)%nv, (vi+3)%nv)
		}
	}
	return m
}

// NumVertex returns the number of vertices.
func (m *Mesh) NumVertex() int {
	return len(m.Vertices)
}

// NumTriangle returns the number of triangles.
func (m *Mesh) NumTriangle() int {
	return len(m.Triangles) / 3
}

// Vertex returns vertex i as a 2D point.
func (m *Mesh) Vertex(i int) Point {
	v := m.Vertices[i]
	return Point{X: v[0], Y: v[1]}
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) [3]Point {
	t := m.Triangles[3*i : 3*i+3]
	return [3]Point{m.Vertex(int(t[0])), m.Vertex(int(t[1])), m.Vertex(int(t[2]))}
}

// BoundingBox returns the bounding box of all vertices.
func (m *Mesh) BoundingBox() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}
	r := NewRectFromPoints(m.Vertex(0), m.Vertex(0))
	for i := 1; i < len(m.Vertices); i++ {
		r = r.UnionPoint(m.Vertex(i))
	}
	return r
}

// Rails returns count polylines for edge collision. Polyline k consists of
// the vertices 2i+k, for as long as that index exists. Polyline 0 is thus the
// left rail, polyline 1 the right rail. Further polylines repeat the rails,
// starting one sample later. It returns nil if count isn't positive.
func (m *Mesh) Rails(count int) [][]Point {
	if count <= 0 {
		return nil
	}
	out := make([][]Point, count)
	for k := range out {
		var rail []Point
		for i := 0; i+k < len(m.Vertices); i += 2 {
			rail = append(rail, m.Vertex(i+k))
		}
		out[k] = rail
	}
	return out
}

// Transform returns a copy of the mesh with aff applied to all vertices.
// UVs and triangles are copied unchanged.
func (m *Mesh) Transform(aff Affine) *Mesh {
	out := &Mesh{
		Vertices:  make([]f64.Vec3, len(m.Vertices)),
		UVs:       append([]f64.Vec2(nil), m.UVs...),
		Triangles: append([]uint32(nil), m.Triangles...),
	}
	for i, v := range m.Vertices {
		pt := Pt(v[0], v[1]).Transform(aff)
		out.Vertices[i] = f64.Vec3{pt.X, pt.Y, v[2]}
	}
	return out
}

// WriteOBJ writes the mesh in the Wavefront OBJ format, with one texture
// coordinate per vertex.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", f(v[0]), f(v[1]), f(v[2]))
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", f(uv[0]), f(uv[1]))
	}
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i]+1, m.Triangles[i+1]+1, m.Triangles[i+2]+1
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}
