package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Point2D tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
}

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n := p.Normalize()
	if !approxEqual(n.Length(), 1.0, tolerance) {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if z := (Point2D{}).Normalize(); z.X != 0 || z.Z != 0 {
		t.Errorf("expected zero vector, got %+v", z)
	}
}

func TestPointPerp(t *testing.T) {
	p := Pt(1, 0).Perp()
	if !approxEqual(p.X, 0, tolerance) || !approxEqual(p.Z, 1, tolerance) {
		t.Errorf("expected (0,1), got (%f,%f)", p.X, p.Z)
	}
}

func TestPointLerp(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 10)
	mid := a.Lerp(b, 0.5)
	if !approxEqual(mid.X, 5, tolerance) || !approxEqual(mid.Z, 5, tolerance) {
		t.Errorf("expected (5,5), got (%f,%f)", mid.X, mid.Z)
	}
}

func TestVec3Cross(t *testing.T) {
	up := V3(1, 0, 0).Cross(V3(0, 0, -1))
	if !approxEqual(up.Y, 1, tolerance) {
		t.Errorf("expected +Y cross, got %+v", up)
	}
}

func TestLift(t *testing.T) {
	v := Pt(2, 3).Lift(7)
	if v.X != 2 || v.Y != 7 || v.Z != 3 {
		t.Errorf("unexpected lift result %+v", v)
	}
}

// --- Polygon tests ---

func square10() Polygon {
	return NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
}

func TestPolygonAreaSquare(t *testing.T) {
	if a := square10().Area(); !approxEqual(a, 100, tolerance) {
		t.Errorf("expected area 100, got %f", a)
	}
}

func TestPolygonAreaTriangle(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	if a := tri.Area(); !approxEqual(a, 50, tolerance) {
		t.Errorf("expected area 50, got %f", a)
	}
}

func TestPolygonCentroid(t *testing.T) {
	c := square10().Centroid()
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Z, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", c.X, c.Z)
	}
}

func TestPolygonContains(t *testing.T) {
	sq := square10()
	if !sq.Contains(Pt(5, 5)) {
		t.Error("expected (5,5) inside square")
	}
	if sq.Contains(Pt(15, 5)) {
		t.Error("expected (15,5) outside square")
	}
	if sq.Contains(Pt(-1, 5)) {
		t.Error("expected (-1,5) outside square")
	}
}

func TestPolygonEnsureCCW(t *testing.T) {
	cw := square10().Reverse()
	if cw.IsCounterClockwise() {
		t.Fatal("expected reversed square to be CW")
	}
	if !cw.EnsureCCW().IsCounterClockwise() {
		t.Error("expected EnsureCCW to produce CCW winding")
	}
}

func TestPolygonDegenerate(t *testing.T) {
	p := NewPolygon(Pt(0, 0), Pt(1, 1))
	if !p.IsDegenerate() {
		t.Error("expected 2-point polygon to be degenerate")
	}
	if p.Area() != 0 {
		t.Error("expected zero area")
	}
}

func TestPolygonOffsetSquare(t *testing.T) {
	grown := square10().Offset(1)
	if !approxEqual(grown.Area(), 144, 0.5) {
		t.Errorf("expected area ~144 after +1 offset, got %f", grown.Area())
	}
	shrunk := square10().Offset(-1)
	if !approxEqual(shrunk.Area(), 64, 0.5) {
		t.Errorf("expected area ~64 after -1 offset, got %f", shrunk.Area())
	}
}

// --- Triangulation tests ---

func TestTriangulateConvexQuad(t *testing.T) {
	tris := Triangulate(square10())
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles for a convex quad, got %d", len(tris))
	}
	if a := triangleArea(square10(), tris); !approxEqual(a, 100, tolerance) {
		t.Errorf("expected triangle cover area 100, got %f", a)
	}
}

func TestTriangulateConcaveL(t *testing.T) {
	// L-shape: 10x10 with a 5x5 notch removed from one corner.
	l := NewPolygon(
		Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10), Pt(0, 10),
	)
	tris := Triangulate(l)
	if len(tris) != 4 {
		t.Fatalf("expected 4 triangles for a 6-vertex polygon, got %d", len(tris))
	}
	if a := triangleArea(l, tris); !approxEqual(a, 75, tolerance) {
		t.Errorf("expected cover area 75, got %f", a)
	}
	// No triangle may cover the notch.
	notch := Pt(7.5, 7.5)
	for _, tri := range tris {
		if pointInTriangle(notch,
			l.Vertices[tri[0]], l.Vertices[tri[1]], l.Vertices[tri[2]]) {
			t.Errorf("triangle %v covers the concave notch", tri)
		}
	}
}

func TestTriangulateClockwiseInput(t *testing.T) {
	tris := Triangulate(square10().Reverse())
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles for CW quad, got %d", len(tris))
	}
	// Output must still wind CCW relative to the original vertex positions.
	cw := square10().Reverse()
	for _, tri := range tris {
		a, b, c := cw.Vertices[tri[0]], cw.Vertices[tri[1]], cw.Vertices[tri[2]]
		if b.Sub(a).Cross(c.Sub(b)) <= 0 {
			t.Errorf("triangle %v winds clockwise", tri)
		}
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	if tris := Triangulate(NewPolygon(Pt(0, 0), Pt(1, 0))); tris != nil {
		t.Errorf("expected nil for degenerate input, got %v", tris)
	}
}

func triangleArea(p Polygon, tris []Triangle) float64 {
	total := 0.0
	for _, tri := range tris {
		a, b, c := p.Vertices[tri[0]], p.Vertices[tri[1]], p.Vertices[tri[2]]
		total += math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
	}
	return total
}

func TestApproximateCircle(t *testing.T) {
	c := ApproximateCircle(Pt(3, 4), 2, 64)
	if !c.IsCounterClockwise() {
		t.Error("circle approximation must wind CCW")
	}
	if !approxEqual(c.Area(), math.Pi*4, 0.05) {
		t.Errorf("expected area near %f, got %f", math.Pi*4, c.Area())
	}
	if !approxEqual(c.Centroid().X, 3, 1e-9) || !approxEqual(c.Centroid().Z, 4, 1e-9) {
		t.Errorf("centroid drifted: %+v", c.Centroid())
	}

	if got := ApproximateCircle(Pt(0, 0), 1, 1).Len(); got != 3 {
		t.Errorf("segment count should clamp to 3, got %d", got)
	}
}
