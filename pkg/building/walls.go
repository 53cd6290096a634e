package building

import (
	"math"

	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// opening is one window slot along a segment, in segment-arc-length space.
type opening struct {
	t0, t1 float64
}

// planOpenings spaces window slots along a wall of the given length,
// clipping to the usable run and reserving corner margins. The slots are
// centered so leftover space splits evenly between the two ends.
func planOpenings(length float64, wp WindowParams) []opening {
	usable := length - 2*wp.CornerMargin
	if usable < wp.Width {
		return nil
	}
	count := int(math.Floor(usable / wp.Spacing))
	if count < 1 {
		if usable >= wp.Width {
			count = 1
		} else {
			return nil
		}
	}
	start := wp.CornerMargin + (usable-float64(count)*wp.Spacing)/2 + (wp.Spacing-wp.Width)/2
	slots := make([]opening, 0, count)
	for i := 0; i < count; i++ {
		t0 := start + float64(i)*wp.Spacing
		slots = append(slots, opening{t0: t0, t1: t0 + wp.Width})
	}
	return slots
}

// buildWalls emits every wall segment across all floors: solid strips, piers
// between openings, and the per-window reveal/glass/frame geometry. It
// returns the per-floor emission summary.
func buildWalls(rec mapdata.Record, ctx Context, segs []WallSegment, out *mesh.Result) []mesh.FloorEmission {
	emission := make([]mesh.FloorEmission, ctx.Levels)
	bestEnergy := make([]float64, ctx.Levels)
	for f := range emission {
		emission[f].Floor = f
	}

	wp := ctx.Params.WindowsFor(ctx.Class)
	storefrontSegs := storefrontSegments(ctx, segs)

	for _, seg := range segs {
		for floor := 0; floor < ctx.Levels; floor++ {
			y0 := ctx.BaseElev + float64(floor)*ctx.FloorHeight
			y1 := y0 + ctx.FloorHeight

			if floor == 0 && storefrontSegs[seg.Index] {
				buildStorefront(rec, ctx, seg, y0, y1, out)
				continue
			}

			slots := planOpenings(seg.Length, wp)
			if len(slots) == 0 {
				wallQuad(out.Buffer(mesh.ChannelWall), seg, 0, seg.Length, y0, y1, ctx.FacadeColor)
				continue
			}

			wy0 := y0 + wp.SillHeight
			wy1 := math.Min(wy0+wp.Height, y1-0.2)
			if wy1-wy0 < 0.3 {
				// Floor too low for the class's window band.
				wallQuad(out.Buffer(mesh.ChannelWall), seg, 0, seg.Length, y0, y1, ctx.FacadeColor)
				continue
			}

			wall := out.Buffer(mesh.ChannelWall)
			// Solid strips under the sills and above the heads.
			wallQuad(wall, seg, 0, seg.Length, y0, wy0, ctx.FacadeColor)
			wallQuad(wall, seg, 0, seg.Length, wy1, y1, ctx.FacadeColor)

			// Piers between openings.
			cursor := 0.0
			for _, slot := range slots {
				wallQuad(wall, seg, cursor, slot.t0, wy0, wy1, ctx.FacadeColor)
				cursor = slot.t1
			}
			wallQuad(wall, seg, cursor, seg.Length, wy0, wy1, ctx.FacadeColor)

			for w, slot := range slots {
				stats := buildWindow(rec, ctx, seg, slot, floor, w, wy0, wy1, out)
				emission[floor].Windows++
				if stats.lit {
					emission[floor].LitWindows++
					emission[floor].MeanEnergy += stats.energy
					if stats.energy > bestEnergy[floor] {
						bestEnergy[floor] = stats.energy
						emission[floor].DominantHue = stats.color
					}
				}
			}
		}
	}

	for f := range emission {
		if emission[f].LitWindows > 0 {
			emission[f].MeanEnergy /= float64(emission[f].LitWindows)
		}
	}
	return emission
}

// storefrontSegments marks which segment indices get a ground-floor
// storefront instead of regular windows.
func storefrontSegments(ctx Context, segs []WallSegment) map[int]bool {
	marked := make(map[int]bool, len(segs))
	if ctx.Class != ClassCommercial || !ctx.Detailed {
		return marked
	}
	for _, seg := range segs {
		if seg.Length >= storefrontMinLength {
			marked[seg.Index] = true
		}
	}
	return marked
}
