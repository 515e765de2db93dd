package track

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [SVG], [WriteSVG] and
// [WriteSVGDocument].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

func (opts SVGOptions) format(n float64) string {
	if opts.MaxPrecision <= 0 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Polyline returns the path elements that connect pts with straight lines,
// closing the subpath if closed is set.
func Polyline(pts []Point, closed bool) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for i, pt := range pts {
			el := LineTo(pt)
			if i == 0 {
				el = MoveTo(pt)
			}
			if !yield(el) {
				return
			}
		}
		if closed && len(pts) > 0 {
			yield(ClosePath())
		}
	}
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := opts.format
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			writef("M%s,%s", format(el.P0.X), format(el.P0.Y))
		case LineToKind:
			writef("L%s,%s", format(el.P0.X), format(el.P0.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y),
				format(el.P2.X), format(el.P2.Y))
		case ClosePathKind:
			write(z)
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
	}
	return err
}

// WriteSVGDocument writes a standalone SVG document showing the path's curve,
// its anchors and, if tr is not nil, the centerline samples and the rails of
// the built track.
//
// The document flips the y axis, so that the y-up track space is displayed
// the right way up.
func WriteSVGDocument(w io.Writer, p *Path, tr *Track, opts SVGOptions) error {
	bbox := p.BoundingBox()
	if tr != nil && tr.Mesh != nil && tr.Mesh.NumVertex() > 0 {
		bbox = bbox.Union(tr.Mesh.BoundingBox())
	}
	bbox = bbox.Inflate(0.5, 0.5)
	format := opts.format
	stroke := max(bbox.Width(), bbox.Height()) / 400

	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	path := func(seq iter.Seq[PathElement], style string) {
		writef(`<path d="`)
		if err == nil {
			err = WriteSVG(w, seq, opts)
		}
		writef(`" %s />`+"\n", style)
	}

	writef(`<svg viewBox="%s %s %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		format(bbox.X0), format(-bbox.Y1), format(bbox.Width()), format(bbox.Height()))
	writef(`<g transform="scale(1,-1)">` + "\n")
	if tr != nil && tr.Mesh != nil {
		for _, rail := range tr.Mesh.Rails(2) {
			path(Polyline(rail, p.IsClosed()), fmt.Sprintf(`fill="none" stroke="#555" stroke-width="%s"`, format(stroke)))
		}
		path(Polyline(tr.Points, p.IsClosed()), fmt.Sprintf(`fill="none" stroke="#c80" stroke-width="%s" stroke-dasharray="%s"`, format(stroke), format(4*stroke)))
	}
	path(p.Elements(), fmt.Sprintf(`fill="none" stroke="#0a0" stroke-width="%s"`, format(2*stroke)))
	for _, a := range p.AnchorPoints() {
		writef(`<circle cx="%s" cy="%s" r="%s" fill="#d00" />`+"\n", format(a.X), format(a.Y), format(4*stroke))
	}
	writef("</g>\n</svg>\n")
	return err
}
