package mapdata

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/geo"
)

// LoadShapefile reads polygon features with their DBF attributes. Attribute
// names are matched case-insensitively; recognized columns are ID, NAME,
// KIND (or TYPE), TAG, HEIGHT, LEVELS, LAYER, MINLEVEL, MATERIAL and COLOR.
func LoadShapefile(path string) ([]Record, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "mapdata: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	// attr reads the named column for the record the reader is positioned on.
	attr := func(names ...string) string {
		for _, n := range names {
			if idx, ok := fieldIdx[n]; ok {
				v := strings.TrimRight(reader.Attribute(idx), "\x00")
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
		return ""
	}

	var records []Record
	var skipped int
	row := 0
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || len(poly.Points) == 0 {
			skipped++
			row++
			continue
		}

		rec := Record{
			ID:        attrInt64(attr("id"), int64(1<<62)+int64(row)),
			Name:      attr("name"),
			Kind:      shapeKind(attr("kind", "type")),
			Footprint: exteriorRing(poly),
			Tag:       attr("tag", "bldg_type"),
			Height:    attrFloat(attr("height")),
			Levels:    int(attrFloat(attr("levels"))),
			Layer:     int(attrFloat(attr("layer"))),
			MinLevel:  int(attrFloat(attr("minlevel"))),
			Material:  attr("material"),
			ColorHex:  attr("color"),
		}
		rec.normalize()
		records = append(records, rec)
		row++
	}

	if skipped > 0 {
		zap.L().Debug("mapdata: skipped non-polygon shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return records, nil
}

// exteriorRing takes the first part of the polygon as the footprint. Parts
// after the first are holes or islands the generator does not model.
func exteriorRing(poly *shp.Polygon) geo.Polygon {
	end := len(poly.Points)
	if len(poly.Parts) > 1 {
		end = int(poly.Parts[1])
	}
	pts := make([]geo.Point2D, 0, end)
	for _, p := range poly.Points[:end] {
		pts = append(pts, geo.Pt(p.X, p.Y))
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return geo.Polygon{Vertices: pts}
}

func shapeKind(s string) Kind {
	switch strings.ToLower(s) {
	case "road", "highway":
		return KindRoad
	case "park", "green":
		return KindPark
	case "water":
		return KindWater
	default:
		return KindBuilding
	}
}

func attrInt64(s string, fallback int64) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return fallback
}

func attrFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
