// Package track provides editable Bézier paths and derives road surfaces from
// them. It was designed to author 2D race tracks, such as the environments of
// driving agents, but the pieces are independent of that use.
//
// # Paths
//
// [Path] is a chain of cubic Bézier segments, stored as a flat buffer of
// anchors and control points. It supports the edits a track editor needs:
// adding, splitting and deleting segments ([Path.AddSegment],
// [Path.SplitSegment], [Path.DeleteSegment]), dragging points
// ([Path.MovePoint]), and opening or closing the loop ([Path.SetClosed]).
//
// With [Path.SetAutoSetControlPoints], control points are no longer edited by
// hand. Instead, each anchor's control points are placed along the bisector
// of the directions to its neighbouring anchors, at half the distance to the
// respective neighbour. This produces smooth curves through the anchors,
// similar to Catmull-Rom splines.
//
// # Curve math
//
// [EvaluateQuadratic], [EvaluateCubic] and [Tangent] evaluate Bézier curves
// directly from their control points. [QuadBez] and [CubicBez] wrap them as
// values. [CubicBez.Arclen] computes the arc length using Legendre-Gauss
// quadrature.
//
// # Derived geometry
//
// Deriving a track happens in two steps. [Path.EvenlySpacedPoints] walks the
// curve and emits points that are evenly spaced along its arc length.
// [NewRibbonMesh] then offsets these points to both sides, producing the two
// rails of the road and the triangles between them. [Build] combines both
// steps according to [Settings] and also extracts the rails as polylines for
// collision detection.
//
// Derived geometry is never cached. Every call returns fresh buffers, which
// the caller owns.
//
// # Coordinate system
//
// Tracks use a y-up coordinate system. "Left" is the side that is to the left
// when travelling along the path, which is the counter-clockwise
// perpendicular of the direction of travel.
//
// # Output
//
// Paths and polylines can be written as SVG path data ([WriteSVG]) or as
// standalone SVG documents ([WriteSVGDocument]). Meshes can be written as
// Wavefront OBJ files ([Mesh.WriteOBJ]). Raster previews are provided by the
// preview package, persistent track documents by the trackfile package.
package track
