package building

import (
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Coordinate convention: footprints wind counterclockwise (positive shoelace
// area in the XZ plane). For such a winding, lifting a triangle in vertex
// order yields a -Y normal, so upward caps emit reversed and outward wall
// normals are the edge direction rotated clockwise.

// wallQuad emits a vertical quad along a segment between offsets t0..t1 and
// heights y0..y1, facing the segment's outward normal.
func wallQuad(buf *mesh.SurfaceBuffer, seg WallSegment, t0, t1, y0, y1 float64, col mesh.Color) {
	if t1-t0 < 1e-9 || y1-y0 < 1e-9 {
		return
	}
	buf.AddQuad(
		seg.At(t0).Lift(y0),
		seg.At(t0).Lift(y1),
		seg.At(t1).Lift(y1),
		seg.At(t1).Lift(y0),
		seg.Normal3(),
		col,
	)
}

// recessedQuad emits a quad parallel to the wall plane, pushed inward by
// depth, still facing outward.
func recessedQuad(buf *mesh.SurfaceBuffer, seg WallSegment, t0, t1, y0, y1, depth float64, col mesh.Color) {
	in := seg.Normal3().Scale(-depth)
	buf.AddQuad(
		seg.At(t0).Lift(y0).Add(in),
		seg.At(t0).Lift(y1).Add(in),
		seg.At(t1).Lift(y1).Add(in),
		seg.At(t1).Lift(y0).Add(in),
		seg.Normal3(),
		col,
	)
}

// emitPrism extrudes a CCW polygon between y0 and y1: side walls, an upward
// top cap, and (optionally) a downward bottom cap. Used for steps, rooftop
// equipment, chimneys and balcony slabs.
func emitPrism(buf *mesh.SurfaceBuffer, poly geo.Polygon, y0, y1 float64, col mesh.Color, withBottom bool) {
	if poly.IsDegenerate() || y1-y0 < 1e-9 {
		return
	}
	poly = poly.EnsureCCW()
	for _, seg := range Segments(poly) {
		wallQuad(buf, seg, 0, seg.Length, y0, y1, col)
	}
	emitCap(buf, poly, y1, col, true)
	if withBottom {
		emitCap(buf, poly, y0, col, false)
	}
}

// emitCap triangulates a polygon into a horizontal face at height y.
func emitCap(buf *mesh.SurfaceBuffer, poly geo.Polygon, y float64, col mesh.Color, up bool) {
	tris := geo.Triangulate(poly)
	if len(tris) == 0 {
		return
	}
	normal := geo.V3(0, 1, 0)
	if !up {
		normal = geo.V3(0, -1, 0)
	}
	base := make([]int32, poly.Len())
	for i, v := range poly.Vertices {
		base[i] = buf.AddVertex(v.Lift(y), normal, [2]float64{v.X, v.Z}, col)
	}
	for _, t := range tris {
		if up {
			buf.AddTriangle(base[t[0]], base[t[2]], base[t[1]])
		} else {
			buf.AddTriangle(base[t[0]], base[t[1]], base[t[2]])
		}
	}
}

// emitBand extrudes a closed ring outward from the footprint: an outward
// face per edge plus top and bottom capping rings, so the band always reads
// as a solid ridge rather than a one-sided shell.
func emitBand(buf *mesh.SurfaceBuffer, footprint geo.Polygon, y0, height, depth float64, col mesh.Color) {
	if footprint.IsDegenerate() || height < 1e-9 || depth < 1e-9 {
		return
	}
	inner := footprint
	outer := footprint.Offset(depth)
	n := inner.Len()
	yTop := y0 + height

	for _, seg := range Segments(outer) {
		wallQuad(buf, seg, 0, seg.Length, y0, yTop, col)
	}
	for i := 0; i < n; i++ {
		oa, ob := outer.Vertices[i], outer.Vertices[(i+1)%n]
		ia, ib := inner.Vertices[i], inner.Vertices[(i+1)%n]
		// Top cap, facing up.
		buf.AddQuadAuto(oa.Lift(yTop), ia.Lift(yTop), ib.Lift(yTop), ob.Lift(yTop), col)
		// Bottom cap, facing down.
		buf.AddQuadAuto(oa.Lift(y0), ob.Lift(y0), ib.Lift(y0), ia.Lift(y0), col)
	}
}

// boxAt builds a rectangle centered at c, with dir along the w axis.
func boxAt(c geo.Point2D, dir geo.Point2D, w, d float64) geo.Polygon {
	side := dir.Perp()
	hw, hd := w/2, d/2
	return geo.NewPolygon(
		c.Sub(dir.Scale(hw)).Sub(side.Scale(hd)),
		c.Add(dir.Scale(hw)).Sub(side.Scale(hd)),
		c.Add(dir.Scale(hw)).Add(side.Scale(hd)),
		c.Sub(dir.Scale(hw)).Add(side.Scale(hd)),
	)
}
