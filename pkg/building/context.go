package building

import (
	"strconv"
	"strings"

	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// TerrainSampler supplies ground elevation for building bases. Terrain is an
// external collaborator; the default keeps everything at sea level.
type TerrainSampler interface {
	ElevationAt(p geo.Point2D) float64
}

// FlatTerrain is the zero-elevation TerrainSampler.
type FlatTerrain struct{}

// ElevationAt always returns 0.
func (FlatTerrain) ElevationAt(geo.Point2D) float64 { return 0 }

// RoofShape is the resolved roof style for one building.
type RoofShape int

const (
	RoofFlat RoofShape = iota
	RoofParapet
)

// Context holds the normalized per-generation fields derived from a record.
// It is created fresh for every generation call and never shared.
type Context struct {
	Class       Class
	Levels      int
	Height      float64
	FloorHeight float64
	BaseElev    float64
	Roof        RoofShape
	Detailed    bool
	FacadeColor mesh.Color
	Params      *Params
}

// DeriveContext normalizes a building record for generation. The detailed
// flag enables the architectural-detail and facade passes; distant buildings
// are generated without them.
func DeriveContext(rec mapdata.Record, terrain TerrainSampler, params *Params, detailed bool) Context {
	if params == nil {
		params = DefaultParams()
	}
	if terrain == nil {
		terrain = FlatTerrain{}
	}

	levels := rec.Levels
	if levels < 1 {
		levels = 1
	}
	height := rec.Height
	if height <= 0 {
		height = mapdata.DefaultHeight
	}

	class := Classify(rec.Tag)
	base := terrain.ElevationAt(rec.Center) + float64(rec.MinLevel)*height/float64(levels)

	ctx := Context{
		Class:       class,
		Levels:      levels,
		Height:      height,
		FloorHeight: height / float64(levels),
		BaseElev:    base,
		Detailed:    detailed,
		FacadeColor: facadeColor(rec, class),
		Params:      params,
	}

	details := params.DetailsFor(class)
	if RandFor(rec.ID, 0, KindRoofEquipment).Chance(details.Parapet) {
		ctx.Roof = RoofParapet
	}
	return ctx
}

// facadeColor resolves the wall tint: an explicit record color wins,
// otherwise a class palette varied deterministically per building.
func facadeColor(rec mapdata.Record, class Class) mesh.Color {
	if c, ok := parseHexColor(rec.ColorHex); ok {
		return c
	}

	var palette []mesh.Color
	switch class {
	case ClassResidential:
		palette = []mesh.Color{
			mesh.RGB(0.82, 0.72, 0.60), // sandstone
			mesh.RGB(0.75, 0.55, 0.45), // brick
			mesh.RGB(0.85, 0.82, 0.74), // stucco
		}
	case ClassCommercial:
		palette = []mesh.Color{
			mesh.RGB(0.65, 0.68, 0.72), // steel grey
			mesh.RGB(0.55, 0.60, 0.66),
			mesh.RGB(0.70, 0.70, 0.68),
		}
	case ClassIndustrial:
		palette = []mesh.Color{
			mesh.RGB(0.55, 0.52, 0.50),
			mesh.RGB(0.60, 0.58, 0.52),
		}
	default:
		palette = []mesh.Color{
			mesh.RGB(0.72, 0.70, 0.66),
			mesh.RGB(0.66, 0.64, 0.62),
		}
	}

	rng := RandFor(rec.ID, 0, KindColor)
	col := palette[rng.Intn(len(palette))]
	// Small per-building value shift so rows of same-class buildings do not
	// read as copies.
	return col.Scaled(rng.Range(0.92, 1.05))
}

// parseHexColor accepts "#RRGGBB" and "RRGGBB".
func parseHexColor(s string) (mesh.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return mesh.Color{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return mesh.Color{}, false
	}
	return mesh.RGB(
		float64(n>>16&0xFF)/255,
		float64(n>>8&0xFF)/255,
		float64(n&0xFF)/255,
	), true
}
