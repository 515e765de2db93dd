package track_test

import (
	"fmt"
	"os"

	"honnef.co/go/track"
)

func ExamplePath() {
	p := track.NewPath(track.Pt(0, 0))
	p.AddSegment(track.Pt(4, 0))
	fmt.Println(p.SegmentCount(), p.PointCount())

	p.SetClosed(true)
	fmt.Println(p.SegmentCount(), p.PointCount())
	fmt.Println(p.AnchorPoints())
	// Output:
	// 2 7
	// 3 9
	// [(-1, 0) (1, 0) (4, 0)]
}

func ExampleBuild() {
	p := track.NewPath(track.Pt(0, 0))
	p.AddSegment(track.Pt(0, 5))
	p.SetAutoSetControlPoints(true)
	p.SetClosed(true)

	s := track.DefaultSettings()
	s.Width = 0.5
	tr, err := track.Build(p, s)
	if err != nil {
		panic(err)
	}
	fmt.Println(tr.Mesh.NumVertex() == 2*len(tr.Points))
	fmt.Println(tr.Mesh.NumTriangle() == 2*len(tr.Points))
	// Output:
	// true
	// true
}

func ExampleWriteSVG() {
	p := track.NewPath(track.Pt(0, 0))
	track.WriteSVG(os.Stdout, p.Elements(), track.SVGOptions{})
	// Output:
	// M-1,0 C-0.5,0.5 0.5,-0.5 1,0
}
