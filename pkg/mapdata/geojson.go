package mapdata

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/geo"
)

// LoadGeoJSON reads a FeatureCollection of buildings, roads, parks and water
// areas. Point and line geometries are skipped; only polygonal features carry
// footprints the generator can use.
func LoadGeoJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "mapdata: read geojson")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "mapdata: parse geojson")
	}

	log := zap.L().With(zap.String("component", "mapdata.geojson"))

	records := make([]Record, 0, len(fc.Features))
	var skipped int
	for i, f := range fc.Features {
		footprint, ok := footprintFromGeom(f.Geometry)
		if !ok {
			skipped++
			continue
		}

		rec := Record{
			ID:        featureID(f, i),
			Name:      propString(f.Properties, "name"),
			Kind:      kindFromProps(f.Properties),
			Footprint: footprint,
			Tag:       tagFromProps(f.Properties),
			Height:    propFloat(f.Properties, "height"),
			Levels:    propInt(f.Properties, "levels", "building:levels"),
			Layer:     propInt(f.Properties, "layer"),
			MinLevel:  propInt(f.Properties, "min_level", "building:min_level"),
			Material:  propString(f.Properties, "material", "building:material"),
			ColorHex:  propString(f.Properties, "colour", "color", "building:colour"),
		}
		rec.normalize()
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Debug("skipped non-polygonal features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return records, nil
}

// footprintFromGeom extracts the exterior ring of a polygonal geometry.
// MultiPolygons contribute their largest member.
func footprintFromGeom(g geom.T) (geo.Polygon, bool) {
	switch t := g.(type) {
	case *geom.Polygon:
		if t.NumLinearRings() == 0 {
			return geo.Polygon{}, false
		}
		return ringToPolygon(t.LinearRing(0).Coords()), true
	case *geom.MultiPolygon:
		best := geo.Polygon{}
		for i := 0; i < t.NumPolygons(); i++ {
			poly := t.Polygon(i)
			if poly.NumLinearRings() == 0 {
				continue
			}
			p := ringToPolygon(poly.LinearRing(0).Coords())
			if p.Area() > best.Area() {
				best = p
			}
		}
		return best, !best.IsDegenerate()
	default:
		return geo.Polygon{}, false
	}
}

// ringToPolygon converts a coordinate ring, dropping the GeoJSON closing
// duplicate of the first vertex.
func ringToPolygon(coords []geom.Coord) geo.Polygon {
	pts := make([]geo.Point2D, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, geo.Pt(c[0], c[1]))
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return geo.Polygon{Vertices: pts}
}

func featureID(f *geojson.Feature, index int) int64 {
	if f.ID != "" {
		if id, err := strconv.ParseInt(f.ID, 10, 64); err == nil {
			return id
		}
	}
	if v, ok := f.Properties["id"]; ok {
		switch id := v.(type) {
		case float64:
			return int64(id)
		case string:
			if n, err := strconv.ParseInt(id, 10, 64); err == nil {
				return n
			}
		}
	}
	// Synthetic ids stay clear of the OSM id space.
	return int64(1<<62) + int64(index)
}

func kindFromProps(props map[string]any) Kind {
	if k := propString(props, "kind"); k != "" {
		return Kind(k)
	}
	switch {
	case propString(props, "building") != "":
		return KindBuilding
	case propString(props, "highway") != "":
		return KindRoad
	case propString(props, "leisure") == "park", propString(props, "landuse") == "grass":
		return KindPark
	case propString(props, "natural") == "water", propString(props, "waterway") != "":
		return KindWater
	default:
		return KindBuilding
	}
}

func tagFromProps(props map[string]any) string {
	if t := propString(props, "tag", "building_type"); t != "" {
		return t
	}
	// OSM convention: building=yes carries no type information.
	if b := propString(props, "building"); b != "" && b != "yes" {
		return b
	}
	return ""
}

func propString(props map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := props[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func propFloat(props map[string]any, keys ...string) float64 {
	for _, k := range keys {
		v, ok := props[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func propInt(props map[string]any, keys ...string) int {
	return int(propFloat(props, keys...))
}
