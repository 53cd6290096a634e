package building

import (
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

const (
	// The cap floats a hair above the wall tops to avoid z-fighting with
	// the cornice.
	roofCapOffset = 0.05

	parapetHeight = 0.9
	parapetWidth  = 0.3
)

// buildRoof triangulates the footprint into an upward cap and, for detailed
// buildings, adds the parapet ring and rooftop equipment.
func buildRoof(rec mapdata.Record, ctx Context, out *mesh.Result) {
	fp := rec.Footprint
	roofY := ctx.BaseElev + ctx.Height + roofCapOffset
	emitCap(out.Buffer(mesh.ChannelRoof), fp, roofY, roofColor(ctx), true)

	if !ctx.Detailed {
		return
	}
	if ctx.Roof == RoofParapet {
		buildParapet(fp, roofY, ctx, out)
	}
	buildRoofEquipment(rec, ctx, roofY, out)
}

// buildParapet rings the roof edge with a low wall: outer face on the
// footprint line, inner face inset, and a top cap joining them.
func buildParapet(fp geo.Polygon, roofY float64, ctx Context, out *mesh.Result) {
	inner := fp.Offset(-parapetWidth)
	if inner.IsDegenerate() || inner.Area() < 1.0 {
		return
	}
	buf := out.Buffer(mesh.ChannelRoof)
	top := roofY + parapetHeight
	col := ctx.FacadeColor.Scaled(0.95)

	for _, seg := range Segments(fp) {
		wallQuad(buf, seg, 0, seg.Length, roofY, top, col)
	}
	// Inner faces look into the roof, so their outward normal flips.
	for _, seg := range Segments(inner.Reverse()) {
		wallQuad(buf, seg, 0, seg.Length, roofY, top, col)
	}
	n := fp.Len()
	for i := 0; i < n; i++ {
		oa, ob := fp.Vertices[i], fp.Vertices[(i+1)%n]
		ia, ib := inner.Vertices[i], inner.Vertices[(i+1)%n]
		buf.AddQuadAuto(oa.Lift(top), ia.Lift(top), ib.Lift(top), ob.Lift(top), col)
	}
}

// buildRoofEquipment scatters AC units, vents and (for some classes) a
// chimney across the roof. Placement is deterministic per building id.
func buildRoofEquipment(rec mapdata.Record, ctx Context, roofY float64, out *mesh.Result) {
	dp := ctx.Params.DetailsFor(ctx.Class)
	rng := RandFor(rec.ID, 0, KindRoofEquipment)
	rng.Uint64() // the parapet decision consumed the first draw

	buf := out.Buffer(mesh.ChannelWall)
	fp := rec.Footprint
	bbMin, bbMax := fp.BoundingBox()

	// Interior sample with rejection; bounded attempts keep generation
	// cost flat on thin footprints.
	sample := func() (geo.Point2D, bool) {
		for i := 0; i < 8; i++ {
			p := geo.Pt(
				rng.Range(bbMin.X+1, bbMax.X-1),
				rng.Range(bbMin.Z+1, bbMax.Z-1),
			)
			if fp.Contains(p) {
				return p, true
			}
		}
		return geo.Point2D{}, false
	}

	if rng.Chance(dp.ACUnits) {
		units := 1 + rng.Intn(3)
		for i := 0; i < units; i++ {
			p, ok := sample()
			if !ok {
				continue
			}
			w := rng.Range(0.8, 1.6)
			emitPrism(buf, boxAt(p, geo.Pt(1, 0), w, w*0.8), roofY, roofY+rng.Range(0.5, 0.9), equipmentColor, false)
		}
	}
	if rng.Chance(dp.Chimney) {
		if p, ok := sample(); ok {
			emitPrism(buf, boxAt(p, geo.Pt(1, 0), 0.6, 0.6), roofY, roofY+rng.Range(1.0, 1.8), chimneyColor, false)
		}
	}
	// Older industrial stock keeps a cylindrical water tank on the roof.
	if ctx.Class == ClassIndustrial && rng.Chance(0.4) {
		if p, ok := sample(); ok {
			tank := geo.ApproximateCircle(p, rng.Range(0.8, 1.2), 12)
			emitPrism(buf, tank, roofY, roofY+rng.Range(1.6, 2.4), tankColor, false)
		}
	}
}

var (
	equipmentColor = mesh.RGB(0.62, 0.64, 0.66)
	chimneyColor   = mesh.RGB(0.48, 0.34, 0.28)
	tankColor      = mesh.RGB(0.50, 0.52, 0.55)
)

func roofColor(ctx Context) mesh.Color {
	switch ctx.Class {
	case ClassIndustrial:
		return mesh.RGB(0.45, 0.45, 0.47)
	case ClassCommercial:
		return mesh.RGB(0.35, 0.37, 0.40)
	default:
		return mesh.RGB(0.40, 0.35, 0.32)
	}
}
