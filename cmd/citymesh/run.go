package main

import (
	"encoding/json"
	"math"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vigil-313/citymesh/internal/server"
	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/config"
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/material"
	"github.com/vigil-313/citymesh/pkg/scene"
	"github.com/vigil-313/citymesh/pkg/stream"
	"github.com/vigil-313/citymesh/pkg/validation"
)

// loadRecords loads and validates a map source. Validation errors abort;
// warnings are reported and generation proceeds.
func loadRecords(cfg *config.Config, src string) ([]mapdata.Record, *validation.Report, error) {
	records, err := mapdata.Load(src, cfg.Map.CacheDir)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "loading map %q", src)
	}
	return records, mapdata.Validate(records), nil
}

func runValidate(cfg *config.Config, src string) error {
	_, report, err := loadRecords(cfg, src)
	if err != nil {
		return err
	}
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

// buildWorld streams the whole map into a scene tree: one manager, observer
// at the map center, load radius wide enough to cover every record, ticks
// repeated until the queue drains.
func buildWorld(cfg *config.Config, records []mapdata.Record) (*stream.ChunkManager, *stream.LoadingQueue) {
	center, radius := coverage(records)
	opts := cfg.StreamOptions()
	opts.LoadRadius = radius + opts.ChunkSize
	opts.UnloadRadius = opts.LoadRadius * 1.25
	opts.DetailRadius = opts.LoadRadius // batch output is always detailed
	opts.MaxLoadsPerEval = len(records) + 1

	queue := stream.NewLoadingQueue(cfg.Queue.MaxSize)
	mgr := stream.NewChunkManager(records, opts, queue, material.NewResolver(), building.FlatTerrain{}, cfg.BuildingParams())
	mgr.SetObserver(center)

	now := time.Now()
	step := time.Duration(cfg.Stream.EvalIntervalMS) * time.Millisecond
	for {
		n := mgr.Tick(now, cfg.Queue.FrameBudgetMS)
		if n == 0 && queue.Len() == 0 && mgr.Stats().Loading == 0 {
			break
		}
		now = now.Add(step)
	}
	return mgr, queue
}

// coverage returns the center and radius of the smallest axis-aligned
// circle-ish bound over all record centers.
func coverage(records []mapdata.Record) (geo.Point2D, float64) {
	if len(records) == 0 {
		return geo.Point2D{}, 0
	}
	minX, minZ := math.MaxFloat64, math.MaxFloat64
	maxX, maxZ := -math.MaxFloat64, -math.MaxFloat64
	for _, r := range records {
		minX = math.Min(minX, r.Center.X)
		minZ = math.Min(minZ, r.Center.Z)
		maxX = math.Max(maxX, r.Center.X)
		maxZ = math.Max(maxZ, r.Center.Z)
	}
	center := geo.Pt((minX+maxX)/2, (minZ+maxZ)/2)
	radius := math.Hypot(maxX-minX, maxZ-minZ)/2 + 1
	return center, radius
}

func runGenerate(cfg *config.Config, src, out string) error {
	records, report, err := loadRecords(cfg, src)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return eris.New("map has validation errors")
	}

	mgr, queue := buildWorld(cfg, records)
	zap.L().Info("generation complete",
		zap.Int("records", len(records)),
		zap.Uint64("executed", queue.Stats().Executed),
		zap.Int("chunks", mgr.Stats().Resident))

	output := map[string]any{
		"scene":      scene.Snap(mgr.Root()),
		"queue":      queue.Stats(),
		"chunks":     mgr.Stats(),
		"validation": report,
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return eris.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runStream(cfg *config.Config, src string, steps int, speed float64) error {
	records, report, err := loadRecords(cfg, src)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return eris.New("map has validation errors")
	}

	queue := stream.NewLoadingQueue(cfg.Queue.MaxSize)
	mgr := stream.NewChunkManager(records, cfg.StreamOptions(), queue, material.NewResolver(), building.FlatTerrain{}, cfg.BuildingParams())

	// The observer walks a straight west-to-east line through the map
	// center, which crosses enough chunk boundaries to exercise loading
	// and unloading.
	center, radius := coverage(records)
	pos := geo.Pt(center.X-radius, center.Z)
	mgr.SetObserver(pos)

	now := time.Now()
	frame := 16 * time.Millisecond // nominal 60 fps
	printStreamHeader()
	for i := 0; i < steps; i++ {
		executed := mgr.Tick(now, cfg.Queue.FrameBudgetMS)
		printStreamTick(i, pos, executed, queue.Stats(), mgr.Stats())

		pos.X += speed
		mgr.SetObserver(pos)
		now = now.Add(frame)
	}

	mgr.Teardown()
	printStreamSummary(queue.Stats(), mgr.Stats())
	return nil
}

// runConfig dumps the effective configuration, useful for checking what a
// config file plus CITYMESH_* environment overrides actually resolve to.
func runConfig(cfg *config.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "encoding config")
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runServe(cfg *config.Config, src string, port int) error {
	records, report, err := loadRecords(cfg, src)
	if err != nil {
		return err
	}

	mgr, queue := buildWorld(cfg, records)
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := server.New(port, server.State{
		Root:    mgr.Root(),
		Queue:   queue.Stats(),
		Chunks:  mgr.Stats(),
		Report:  report,
		Records: records,
	})
	return srv.Start()
}
