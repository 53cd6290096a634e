package building

import (
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Generate produces the complete multi-channel mesh for one building. It is
// a pure function of (record, context): identical inputs yield byte-identical
// buffers. Malformed footprints return an empty result, never an error; the
// caller simply gets no geometry for that feature.
func Generate(rec mapdata.Record, ctx Context) *mesh.Result {
	out := &mesh.Result{}
	if rec.Footprint.IsDegenerate() || ctx.Height <= 0 || ctx.Levels < 1 {
		return out
	}
	if ctx.Params == nil {
		ctx.Params = DefaultParams()
	}

	// Every pass below assumes CCW winding; normalize the local copy once so
	// the detail bands and roof offset outward, not into the building.
	rec.Footprint = rec.Footprint.EnsureCCW()

	segs := Segments(rec.Footprint)
	if len(segs) < 3 {
		return out
	}

	out.Emission = buildWalls(rec, ctx, segs, out)
	buildDetails(rec, ctx, out)
	buildFacade(rec, ctx, segs, out)
	buildRoof(rec, ctx, out)
	return out
}

// EstimateCost predicts the generation time of one building in
// milliseconds. The scheduler budgets frames with this number, so it errs
// slightly high: better to under-fill a frame than to blow its budget.
func EstimateCost(rec mapdata.Record, detailed bool) float64 {
	edges := float64(rec.Footprint.Len())
	levels := float64(rec.Levels)
	if levels < 1 {
		levels = 1
	}
	cost := 0.05 + 0.002*edges*levels*(rec.Footprint.Perimeter()/10+1)
	if detailed {
		cost *= 1.8
	}
	return cost
}
