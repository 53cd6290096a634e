package building

import "github.com/vigil-313/citymesh/pkg/geo"

// WallSegment is one footprint edge: endpoints, unit direction, outward
// normal and length. Segments are produced once per building and consumed by
// the window and facade passes within the same generation call.
type WallSegment struct {
	Index  int
	Start  geo.Point2D
	End    geo.Point2D
	Dir    geo.Point2D // unit vector Start -> End
	Normal geo.Point2D // outward unit normal
	Length float64
}

// Segments builds wall segments for a CCW footprint. Zero-length edges are
// dropped; the returned indices still count every footprint edge so facade
// choices stay stable under duplicate vertices.
func Segments(footprint geo.Polygon) []WallSegment {
	n := footprint.Len()
	if n < 3 {
		return nil
	}
	segs := make([]WallSegment, 0, n)
	for i := 0; i < n; i++ {
		start, end := footprint.Edge(i)
		length := start.Distance(end)
		if length < 1e-9 {
			continue
		}
		dir := end.Sub(start).Scale(1 / length)
		segs = append(segs, WallSegment{
			Index:  i,
			Start:  start,
			End:    end,
			Dir:    dir,
			Normal: dir.Perp().Scale(-1), // outward for CCW winding
			Length: length,
		})
	}
	return segs
}

// At returns the point at distance t along the segment.
func (s WallSegment) At(t float64) geo.Point2D {
	return s.Start.Add(s.Dir.Scale(t))
}

// Normal3 lifts the outward normal into 3D.
func (s WallSegment) Normal3() geo.Vec3 {
	return s.Normal.Lift(0)
}
