package building

import (
	"math"

	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

const (
	storefrontMinLength = 4.0
	doorWidth           = 1.4
	doorHeight          = 2.2
)

// entranceSegment picks the wall that gets the entrance. Longer walls score
// higher; street-facing orientations get a boost: outward-south (-Z) walls
// most, side (±X) walls a little. Ties resolve to the lowest segment index.
func entranceSegment(segs []WallSegment) (WallSegment, bool) {
	best := -1
	bestScore := 0.0
	for i, seg := range segs {
		score := seg.Length
		switch {
		case seg.Normal.Z < -0.7:
			score *= 1.35
		case math.Abs(seg.Normal.X) > 0.7:
			score *= 1.15
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 {
		return WallSegment{}, false
	}
	return segs[best], true
}

// buildFacade runs the class-specific facade pass: exactly one entrance on
// the best wall, plus at most one of storefront (handled during the wall
// pass), balconies or a fire escape.
func buildFacade(rec mapdata.Record, ctx Context, segs []WallSegment, out *mesh.Result) {
	entrance, ok := entranceSegment(segs)
	if !ok {
		return
	}
	buildEntrance(rec, ctx, entrance, out)

	if !ctx.Detailed {
		return
	}
	switch ctx.Class {
	case ClassResidential:
		buildBalconies(rec, ctx, segs, out)
	case ClassIndustrial:
		buildFireEscape(rec, ctx, segs, entrance.Index, out)
	}
	// Commercial storefronts are emitted with the ground-floor walls.
}

// buildEntrance emits a door, entry steps, and an optional canopy centered
// on the chosen segment.
func buildEntrance(rec mapdata.Record, ctx Context, seg WallSegment, out *mesh.Result) {
	mid := seg.Length / 2
	t0 := mid - doorWidth/2
	t1 := mid + doorWidth/2
	if t0 < 0 {
		return // wall shorter than a door; leave it blank
	}
	y0 := ctx.BaseElev

	// Door sits slightly recessed, in the frame channel like other joinery.
	recessedQuad(out.Buffer(mesh.ChannelFrame), seg, t0, t1, y0, y0+doorHeight, 0.08, doorColor)

	// Two entry steps out from the base of the door.
	wall := out.Buffer(mesh.ChannelWall)
	stepDir := seg.Normal
	for _, step := range []struct{ w, d, h float64 }{
		{doorWidth + 0.6, 0.35, 0.30},
		{doorWidth + 1.0, 0.70, 0.15},
	} {
		center := seg.At(mid).Add(stepDir.Scale(step.d / 2))
		emitPrism(wall, boxAt(center, seg.Dir, step.w, step.d), y0, y0+step.h, stepColor, false)
	}

	if ctx.Detailed {
		dp := ctx.Params.DetailsFor(ctx.Class)
		if RandFor(rec.ID, 0, KindEntrance).Chance(dp.Canopy) {
			canopyCenter := seg.At(mid).Add(seg.Normal.Scale(0.6))
			canopy := boxAt(canopyCenter, seg.Dir, doorWidth+0.8, 1.2)
			emitPrism(wall, canopy, y0+doorHeight+0.1, y0+doorHeight+0.25, ctx.FacadeColor, true)
		}
	}
}

// buildStorefront replaces the ground floor of one commercial segment with a
// continuous glazing band, mullions, and a sign board above.
func buildStorefront(rec mapdata.Record, ctx Context, seg WallSegment, y0, y1 float64, out *mesh.Result) {
	const (
		kneeWall   = 0.3 // solid strip at the pavement
		signHeight = 0.6
		mullionW   = 0.12
		bayWidth   = 3.5
	)
	gy0 := y0 + kneeWall
	gy1 := y1 - signHeight
	if gy1-gy0 < 0.5 {
		wallQuad(out.Buffer(mesh.ChannelWall), seg, 0, seg.Length, y0, y1, ctx.FacadeColor)
		return
	}

	wall := out.Buffer(mesh.ChannelWall)
	wallQuad(wall, seg, 0, seg.Length, y0, gy0, ctx.FacadeColor)

	// Sign board strip, tinted from the window-light stream so neighboring
	// shops differ.
	rng := RandFor(rec.ID, 0, KindFacade)
	sign := litPalette[rng.Intn(len(litPalette))].Scaled(0.6)
	wallQuad(out.Buffer(mesh.ChannelFrame), seg, 0, seg.Length, gy1, y1, sign)

	// Glazing bays separated by mullions.
	bays := int(math.Max(1, math.Floor(seg.Length/bayWidth)))
	bayLen := seg.Length / float64(bays)
	glass := out.Buffer(mesh.ChannelGlass)
	frame := out.Buffer(mesh.ChannelFrame)
	lit := rng.Chance(0.7)
	glassCol := unlitGlass
	if lit {
		glassCol = litPalette[rng.Intn(len(litPalette))].WithAlpha(rng.Range(0.6, 1.0))
	}
	for i := 0; i < bays; i++ {
		t0 := float64(i) * bayLen
		t1 := t0 + bayLen
		recessedQuad(glass, seg, t0+mullionW/2, t1-mullionW/2, gy0, gy1, glassDepth, glassCol)
		recessedQuad(frame, seg, t0, t0+mullionW, gy0, gy1, frameDepth/2, frameColor)
	}
	recessedQuad(frame, seg, seg.Length-mullionW, seg.Length, gy0, gy1, frameDepth/2, frameColor)
}

// buildBalconies hangs balconies under a deterministic subset of
// upper-floor windows on residential buildings.
func buildBalconies(rec mapdata.Record, ctx Context, segs []WallSegment, out *mesh.Result) {
	dp := ctx.Params.DetailsFor(ctx.Class)
	if dp.Balcony == 0 || ctx.Levels < 2 {
		return
	}
	wp := ctx.Params.WindowsFor(ctx.Class)
	wall := out.Buffer(mesh.ChannelWall)
	frame := out.Buffer(mesh.ChannelFrame)

	for _, seg := range segs {
		slots := planOpenings(seg.Length, wp)
		for floor := 1; floor < ctx.Levels; floor++ {
			rng := RandFor(rec.ID, floor, KindBalcony)
			y0 := ctx.BaseElev + float64(floor)*ctx.FloorHeight
			for _, slot := range slots {
				// One draw per slot keeps the pattern stable per wall.
				if !rng.Chance(dp.Balcony) {
					continue
				}
				width := slot.t1 - slot.t0 + 0.8
				center := seg.At((slot.t0 + slot.t1) / 2).Add(seg.Normal.Scale(0.55))
				slab := boxAt(center, seg.Dir, width, 1.1)
				emitPrism(wall, slab, y0-0.12, y0+0.05, ctx.FacadeColor.Scaled(0.9), true)

				// Railing: one outward-facing panel on the slab's outer edge.
				railBase := seg.At((slot.t0+slot.t1)/2).Add(seg.Normal.Scale(1.1))
				half := seg.Dir.Scale(width / 2)
				frame.AddQuad(
					railBase.Sub(half).Lift(y0+0.05),
					railBase.Sub(half).Lift(y0+1.05),
					railBase.Add(half).Lift(y0+1.05),
					railBase.Add(half).Lift(y0+0.05),
					seg.Normal3(),
					railColor,
				)
			}
		}
	}
}

// buildFireEscape bolts a zig-zag of platforms and ladders onto the second
// best wall of an industrial building.
func buildFireEscape(rec mapdata.Record, ctx Context, segs []WallSegment, entranceIdx int, out *mesh.Result) {
	dp := ctx.Params.DetailsFor(ctx.Class)
	if ctx.Levels < 2 || !RandFor(rec.ID, 0, KindFireEscape).Chance(dp.FireEscape) {
		return
	}

	// Longest wall that does not hold the entrance.
	var target WallSegment
	found := false
	for _, seg := range segs {
		if seg.Index == entranceIdx || seg.Length < 3.0 {
			continue
		}
		if !found || seg.Length > target.Length {
			target = seg
			found = true
		}
	}
	if !found {
		return
	}

	frame := out.Buffer(mesh.ChannelFrame)
	mid := target.Length / 2
	const platformW = 2.4
	for floor := 1; floor < ctx.Levels; floor++ {
		y := ctx.BaseElev + float64(floor)*ctx.FloorHeight
		center := target.At(mid).Add(target.Normal.Scale(0.45))
		emitPrism(frame, boxAt(center, target.Dir, platformW, 0.9), y-0.08, y, railColor, true)

		// Ladder run down to the previous platform, drawn as a slanted quad.
		lower := y - ctx.FloorHeight
		off := target.Normal.Scale(0.45)
		a := target.At(mid - platformW/2).Add(off)
		b := target.At(mid + platformW/2 - 1.0).Add(off)
		frame.AddQuadAuto(
			a.Lift(lower+0.1),
			a.Lift(lower+0.25),
			b.Lift(y),
			b.Lift(y-0.15),
			railColor,
		)
	}
}

var (
	doorColor = mesh.RGB(0.28, 0.20, 0.15)
	stepColor = mesh.RGB(0.55, 0.55, 0.55)
	railColor = mesh.RGB(0.15, 0.15, 0.17)
)
