package geo

// Triangle holds indices into a polygon's vertex list.
type Triangle [3]int

// Triangulate decomposes a simple polygon into triangles using ear clipping.
// Concave polygons are handled; self-intersecting input produces undefined
// (but bounded) output. Returned indices reference the input vertex order
// and wind counterclockwise, matching a CCW input polygon.
func Triangulate(p Polygon) []Triangle {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}

	// Work on index lists so the output references the caller's vertices
	// even after we reverse a CW polygon.
	idx := make([]int, n)
	verts := p.Vertices
	if p.IsCounterClockwise() {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	tris := make([]Triangle, 0, n-2)
	for len(idx) > 3 {
		clipped := false
		m := len(idx)
		for i := 0; i < m; i++ {
			ia := idx[(i+m-1)%m]
			ib := idx[i]
			ic := idx[(i+1)%m]
			if isEar(verts, idx, ia, ib, ic) {
				tris = append(tris, Triangle{ia, ib, ic})
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
		}
		if !clipped {
			// Degenerate or self-intersecting remainder; fan the rest so
			// we always terminate with a full cover.
			for i := 1; i < len(idx)-1; i++ {
				tris = append(tris, Triangle{idx[0], idx[i], idx[i+1]})
			}
			return tris
		}
	}
	if len(idx) == 3 {
		tris = append(tris, Triangle{idx[0], idx[1], idx[2]})
	}
	return tris
}

// isEar reports whether triangle (a,b,c) is a valid ear: convex at b and
// containing no other polygon vertex.
func isEar(verts []Point2D, idx []int, a, b, c int) bool {
	pa, pb, pc := verts[a], verts[b], verts[c]
	// Convexity for CCW ordering.
	if pb.Sub(pa).Cross(pc.Sub(pb)) <= 1e-12 {
		return false
	}
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		if pointInTriangle(verts[i], pa, pb, pc) {
			return false
		}
	}
	return true
}

// pointInTriangle uses sign tests; points exactly on an edge count as inside
// so collinear vertices never get clipped through.
func pointInTriangle(p, a, b, c Point2D) bool {
	d1 := p.Sub(a).Cross(b.Sub(a))
	d2 := p.Sub(b).Cross(c.Sub(b))
	d3 := p.Sub(c).Cross(a.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
