package building

import (
	"testing"

	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

func testSquare() geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10))
}

// countFacings buckets vertex normals into up, down and side groups.
func countFacings(buf *mesh.SurfaceBuffer) (up, down, side int) {
	for _, n := range buf.Normals {
		switch {
		case n.Y > 0.99:
			up++
		case n.Y < -0.99:
			down++
		default:
			side++
		}
	}
	return up, down, side
}

func TestBandClosedVolume(t *testing.T) {
	var buf mesh.SurfaceBuffer
	emitBand(&buf, testSquare(), 2, 0.35, 0.18, mesh.RGB(0.5, 0.5, 0.5))

	up, down, side := countFacings(&buf)
	if up == 0 || down == 0 || side == 0 {
		t.Fatalf("band is not a closed volume: up=%d down=%d side=%d", up, down, side)
	}
	// A square ring: four outward quads plus four top and four bottom cap
	// quads, four vertices each.
	if up != 16 || down != 16 || side != 16 {
		t.Errorf("expected 16 vertices per face group, got up=%d down=%d side=%d", up, down, side)
	}
}

func TestPrismClosedVolume(t *testing.T) {
	var buf mesh.SurfaceBuffer
	emitPrism(&buf, testSquare(), 0, 1, mesh.RGB(0.5, 0.5, 0.5), true)

	up, down, side := countFacings(&buf)
	if up == 0 || down == 0 || side == 0 {
		t.Fatalf("prism is not a closed volume: up=%d down=%d side=%d", up, down, side)
	}
	if side != 16 {
		t.Errorf("expected 16 side vertices for four wall quads, got %d", side)
	}
}

func TestPrismWithoutBottom(t *testing.T) {
	var buf mesh.SurfaceBuffer
	emitPrism(&buf, testSquare(), 0, 1, mesh.RGB(0.5, 0.5, 0.5), false)

	up, down, _ := countFacings(&buf)
	if up == 0 {
		t.Error("expected a top cap")
	}
	if down != 0 {
		t.Errorf("expected no bottom cap, got %d down-facing vertices", down)
	}
}
