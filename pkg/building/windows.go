package building

import (
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Recess depths, outer wall plane to inner face.
const (
	revealDepth = 0.15
	glassDepth  = 0.12
	frameDepth  = 0.10
	frameLip    = 0.08 // glass inset inside the frame border
)

// Interior light palette. Alpha carries emission intensity on the glass
// channel; the resolver's emission policy turns it into actual light.
var litPalette = []mesh.Color{
	{1.00, 0.85, 0.60, 1},
	{1.00, 0.75, 0.45, 1},
	{0.85, 0.90, 1.00, 1},
	{0.60, 0.70, 1.00, 1},
}

var unlitGlass = mesh.Color{0.08, 0.10, 0.14, 0.04}

// windowStats reports one window's lighting outcome for the floor summary.
type windowStats struct {
	lit    bool
	energy float64
	color  mesh.Color
}

// buildWindow emits one opening: reveal faces into the wall channel, a
// recessed glazing quad into glass, and a frame quad into frame. The lit/
// unlit choice and tint are deterministic per (building, floor, window).
func buildWindow(rec mapdata.Record, ctx Context, seg WallSegment, slot opening, floor, window int, wy0, wy1 float64, out *mesh.Result) windowStats {
	wall := out.Buffer(mesh.ChannelWall)
	in := seg.Normal3().Scale(-revealDepth)

	obl := seg.At(slot.t0).Lift(wy0)
	obr := seg.At(slot.t1).Lift(wy0)
	otl := seg.At(slot.t0).Lift(wy1)
	otr := seg.At(slot.t1).Lift(wy1)
	ibl, ibr := obl.Add(in), obr.Add(in)
	itl, itr := otl.Add(in), otr.Add(in)

	// Reveal: sill (up), head (down), jambs (facing across the opening).
	wall.AddQuadAuto(obl, ibl, ibr, obr, ctx.FacadeColor)
	wall.AddQuadAuto(otl, otr, itr, itl, ctx.FacadeColor)
	wall.AddQuadAuto(obl, otl, itl, ibl, ctx.FacadeColor)
	wall.AddQuadAuto(obr, ibr, itr, otr, ctx.FacadeColor)

	stats := windowGlass(rec, ctx, floor, window)
	glassCol := unlitGlass
	if stats.lit {
		glassCol = stats.color.WithAlpha(stats.energy)
	}
	recessedQuad(out.Buffer(mesh.ChannelGlass), seg,
		slot.t0+frameLip, slot.t1-frameLip, wy0+frameLip, wy1-frameLip,
		glassDepth, glassCol)

	// The frame is a border of four strips around the glazing; a full panel
	// at frame depth would sit in front of the glass and occlude it.
	frame := out.Buffer(mesh.ChannelFrame)
	recessedQuad(frame, seg, slot.t0, slot.t0+frameLip, wy0, wy1, frameDepth, frameColor)
	recessedQuad(frame, seg, slot.t1-frameLip, slot.t1, wy0, wy1, frameDepth, frameColor)
	recessedQuad(frame, seg, slot.t0+frameLip, slot.t1-frameLip, wy0, wy0+frameLip, frameDepth, frameColor)
	recessedQuad(frame, seg, slot.t0+frameLip, slot.t1-frameLip, wy1-frameLip, wy1, frameDepth, frameColor)

	if ctx.Detailed {
		windowDressing(rec, ctx, seg, slot, floor, window, wy0, wy1, out)
	}
	return stats
}

var frameColor = mesh.RGB(0.20, 0.20, 0.22)

// windowGlass decides the lighting of one window. The simulation is a plain
// occupancy draw: most windows are dark, lit ones pick a hue and intensity.
func windowGlass(rec mapdata.Record, ctx Context, floor, window int) windowStats {
	rng := WindowRand(rec.ID, floor, window)
	wp := ctx.Params.WindowsFor(ctx.Class)
	if !rng.Chance(wp.LitChance) {
		return windowStats{}
	}
	col := litPalette[rng.Intn(len(litPalette))]
	return windowStats{
		lit:    true,
		energy: rng.Range(0.55, 1.0),
		color:  col,
	}
}

// windowDressing adds shutters and flower boxes where the class tables say
// so. Both are deterministic per window.
func windowDressing(rec mapdata.Record, ctx Context, seg WallSegment, slot opening, floor, window int, wy0, wy1 float64, out *mesh.Result) {
	dp := ctx.Params.DetailsFor(ctx.Class)
	if dp.Shutters == 0 && dp.FlowerBoxes == 0 {
		return
	}
	// Fixed offset into the window's stream keeps dressing draws independent
	// of how many draws the lighting decision consumed.
	rng := WindowRand(rec.ID, floor, window)
	for i := 0; i < 4; i++ {
		rng.Uint64()
	}

	frame := out.Buffer(mesh.ChannelFrame)
	if rng.Chance(dp.Shutters) {
		const shutterW = 0.35
		wallOut := seg.Normal3().Scale(0.02)
		for _, t := range [][2]float64{{slot.t0 - shutterW, slot.t0}, {slot.t1, slot.t1 + shutterW}} {
			if t[0] < 0 || t[1] > seg.Length {
				continue
			}
			frame.AddQuad(
				seg.At(t[0]).Lift(wy0).Add(wallOut),
				seg.At(t[0]).Lift(wy1).Add(wallOut),
				seg.At(t[1]).Lift(wy1).Add(wallOut),
				seg.At(t[1]).Lift(wy0).Add(wallOut),
				seg.Normal3(),
				shutterColor,
			)
		}
	}
	if rng.Chance(dp.FlowerBoxes) {
		center := seg.At((slot.t0 + slot.t1) / 2).Add(seg.Normal.Scale(0.15))
		box := boxAt(center, seg.Dir, slot.t1-slot.t0, 0.3)
		emitPrism(out.Buffer(mesh.ChannelWall), box, wy0-0.25, wy0, flowerBoxColor, true)
	}
}

var (
	shutterColor   = mesh.RGB(0.25, 0.35, 0.30)
	flowerBoxColor = mesh.RGB(0.45, 0.30, 0.20)
)
