package mapdata

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/validation"
)

// Load reads feature records from a local path or remote source. Remote
// sources (anything go-getter can detect: http, git, s3) are fetched into
// cacheDir first. The format is chosen by file extension.
func Load(src, cacheDir string) ([]Record, error) {
	path, err := fetch(src, cacheDir)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".shp":
		return LoadShapefile(path)
	default:
		return nil, eris.Errorf("mapdata: unsupported map format %q", filepath.Ext(path))
	}
}

// fetch resolves a map source to a local file. Local paths pass through.
func fetch(src, cacheDir string) (string, error) {
	if _, err := os.Stat(src); err == nil {
		return src, nil
	}
	if !strings.Contains(src, "://") {
		return "", eris.Errorf("mapdata: map source %q not found", src)
	}

	sum := sha256.Sum256([]byte(src))
	dst := filepath.Join(cacheDir, hex.EncodeToString(sum[:8])+"_"+filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	zap.L().Info("mapdata: fetching remote map",
		zap.String("src", src),
		zap.String("dst", dst),
	)
	if err := getter.GetFile(dst, src); err != nil {
		return "", eris.Wrapf(err, "mapdata: fetch %s", src)
	}
	return dst, nil
}

// Validate checks a record set for problems the pipeline would otherwise
// paper over: duplicate ids break the one-in-flight-per-id invariant at the
// source, degenerate footprints generate no geometry, and non-positive
// dimensions indicate broken attribute mapping.
func Validate(records []Record) *validation.Report {
	report := validation.NewReport()
	seen := make(map[int64]bool, len(records))

	for _, rec := range records {
		if seen[rec.ID] {
			report.AddError(validation.Result{
				Level:     validation.LevelFormat,
				Message:   "duplicate feature id",
				FeatureID: rec.ID,
				Field:     "id",
			})
		}
		seen[rec.ID] = true

		if rec.Footprint.IsDegenerate() {
			report.AddWarning(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     "footprint has fewer than 3 points; no geometry will be generated",
				FeatureID:   rec.ID,
				ActualValue: rec.Footprint.Len(),
				Expected:    ">= 3 points",
			})
		}

		if rec.Kind == KindBuilding {
			if rec.Height <= 0 {
				report.AddWarning(validation.Result{
					Level:       validation.LevelAttribute,
					Message:     "non-positive height",
					FeatureID:   rec.ID,
					Field:       "height",
					ActualValue: rec.Height,
				})
			}
			if rec.Levels <= 0 {
				report.AddWarning(validation.Result{
					Level:       validation.LevelAttribute,
					Message:     "non-positive level count",
					FeatureID:   rec.ID,
					Field:       "levels",
					ActualValue: rec.Levels,
				})
			}
		}
	}

	report.AddInfo(validation.Result{
		Level:       validation.LevelFormat,
		Message:     "features loaded",
		ActualValue: len(records),
	})
	return report
}
