package building

import (
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Band dimensions. Depth is how far the ridge stands proud of the wall.
const (
	foundationHeight = 0.60
	foundationDepth  = 0.12
	corniceHeight    = 0.35
	corniceDepth     = 0.18
	ledgeHeight      = 0.12
	ledgeDepth       = 0.06
	slabThickness    = 0.20
)

// buildDetails emits the architectural bands for a detailed multi-storey
// building: a foundation plinth, a cornice under the roof line, a ledge at
// every intermediate floor line, and interior floor slabs.
func buildDetails(rec mapdata.Record, ctx Context, out *mesh.Result) {
	if !ctx.Detailed || ctx.Levels < 2 {
		return
	}
	fp := rec.Footprint
	wall := out.Buffer(mesh.ChannelWall)
	base := ctx.BaseElev

	emitBand(wall, fp, base, foundationHeight, foundationDepth, foundationColor)
	emitBand(wall, fp, base+ctx.Height-corniceHeight, corniceHeight, corniceDepth, ctx.FacadeColor.Scaled(0.85))

	floorBuf := out.Buffer(mesh.ChannelFloor)
	for floor := 1; floor < ctx.Levels; floor++ {
		y := base + float64(floor)*ctx.FloorHeight
		emitBand(wall, fp, y-ledgeHeight/2, ledgeHeight, ledgeDepth, ctx.FacadeColor.Scaled(0.9))

		// Slab: upward walking surface and a soffit underneath, so the
		// interior volume between floors stays closed.
		emitCap(floorBuf, fp, y, slabColor, true)
		emitCap(floorBuf, fp, y-slabThickness, slabColor, false)
	}
}

var (
	foundationColor = mesh.RGB(0.42, 0.42, 0.44)
	slabColor       = mesh.RGB(0.60, 0.58, 0.55)
)
