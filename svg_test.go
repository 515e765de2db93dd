package track

import (
	"strings"
	"testing"
)

func TestSVG(t *testing.T) {
	p := NewPath(Pt(0, 0))
	diff(t, "M-1,0 C-0.5,0.5 0.5,-0.5 1,0", SVG(p.Elements(), SVGOptions{}))
	p.SetClosed(true)
	diff(t, "M-1,0 C-0.5,0.5 0.5,-0.5 1,0 C1.5,0.5 -1.5,-0.5 -1,0 Z", SVG(p.Elements(), SVGOptions{}))

	diff(t, "M0,0 L1,2 Z", SVG(Polyline([]Point{Pt(0, 0), Pt(1, 2)}, true), SVGOptions{}))
	diff(t, "", SVG(Polyline(nil, true), SVGOptions{}))
}

func TestSVGOptionsFormat(t *testing.T) {
	opts := SVGOptions{MaxPrecision: 2}
	tests := []struct {
		in   float64
		want string
	}{
		{1.0 / 3.0, "0.33"},
		{1, "1"},
		{10, "10"},
		{100, "100"},
		{-0.001, "0"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		diff(t, tt.want, opts.format(tt.in))
	}
	diff(t, "0.1", SVGOptions{}.format(0.1))
}

func TestWriteSVGDocument(t *testing.T) {
	p := NewPath(Pt(0, 0))
	p.AddSegment(Pt(4, 2))
	p.SetClosed(true)
	p.SetAutoSetControlPoints(true)
	tr, err := Build(p, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	sb := &strings.Builder{}
	if err := WriteSVGDocument(sb, p, tr, SVGOptions{MaxPrecision: 3}); err != nil {
		t.Fatal(err)
	}
	doc := sb.String()
	if !strings.HasPrefix(doc, "<svg ") || !strings.HasSuffix(doc, "</svg>\n") {
		t.Errorf("malformed document:\n%s", doc)
	}
	diff(t, 3, strings.Count(doc, "<circle"))
	diff(t, 4, strings.Count(doc, "<path"))

	sb.Reset()
	if err := WriteSVGDocument(sb, p, nil, SVGOptions{}); err != nil {
		t.Fatal(err)
	}
	diff(t, 1, strings.Count(sb.String(), "<path"))
}
