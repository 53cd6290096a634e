package building

import (
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Slab thickness and stacking order for flat features. Roads sit above parks
// and parks above water so overlapping footprints do not z-fight.
const (
	slabWater = 0.04
	slabPark  = 0.08
	slabRoad  = 0.12
)

// GenerateFlat produces the slab mesh for non-building features. Roads,
// parks and water all extrude their footprint into a thin prism on the floor
// channel; building records yield nothing here.
func GenerateFlat(rec mapdata.Record, terrain TerrainSampler) *mesh.Result {
	out := &mesh.Result{}
	if rec.Footprint.IsDegenerate() {
		return out
	}
	if terrain == nil {
		terrain = FlatTerrain{}
	}

	var top float64
	var col mesh.Color
	switch rec.Kind {
	case mapdata.KindRoad:
		top, col = slabRoad, mesh.RGB(0.22, 0.22, 0.24)
	case mapdata.KindPark:
		top, col = slabPark, mesh.RGB(0.30, 0.48, 0.25)
	case mapdata.KindWater:
		top, col = slabWater, mesh.RGB(0.18, 0.34, 0.48)
	default:
		return out
	}
	if c, ok := parseHexColor(rec.ColorHex); ok {
		col = c
	}

	base := terrain.ElevationAt(rec.Center)
	emitPrism(out.Buffer(mesh.ChannelFloor), rec.Footprint, base, base+top, col, false)
	return out
}

// FlatCost estimates slab generation time in milliseconds. Slabs are far
// cheaper than buildings, so mixed chunks drain their ground plane first
// only when it is actually closer.
func FlatCost(rec mapdata.Record) float64 {
	return 0.02 + 0.0005*float64(rec.Footprint.Len())
}
