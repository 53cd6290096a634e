package mapdata

import "github.com/vigil-313/citymesh/pkg/geo"

// Kind identifies what a feature record describes.
type Kind string

const (
	KindBuilding Kind = "building"
	KindRoad     Kind = "road"
	KindPark     Kind = "park"
	KindWater    Kind = "water"
)

// Defaults substituted for missing optional attributes.
const (
	DefaultHeight = 6.0
	DefaultLevels = 2
)

// Record is one immutable feature from the map source. The core never
// mutates records; all derived state lives in per-call context structs.
type Record struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name,omitempty"`
	Kind      Kind        `json:"kind"`
	Footprint geo.Polygon `json:"-"`
	Center    geo.Point2D `json:"center"`
	Tag       string      `json:"tag,omitempty"` // building-type tag, e.g. "commercial"
	Height    float64     `json:"height"`
	Levels    int         `json:"levels"`
	Layer     int         `json:"layer,omitempty"`
	MinLevel  int         `json:"min_level,omitempty"`
	Material  string      `json:"material,omitempty"`
	ColorHex  string      `json:"color,omitempty"` // explicit facade color override
}

// normalize fills in documented defaults for missing optional attributes and
// derives the center point when the source did not provide one.
func (r *Record) normalize() {
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
	if r.Levels <= 0 {
		r.Levels = DefaultLevels
	}
	if r.Center == (geo.Point2D{}) && !r.Footprint.IsDegenerate() {
		r.Center = r.Footprint.Centroid()
	}
	r.Footprint = r.Footprint.EnsureCCW()
}
