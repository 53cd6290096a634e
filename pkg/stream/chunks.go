package stream

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/material"
	"github.com/vigil-313/citymesh/pkg/scene"
)

// ChunkKey addresses one fixed-size cell of the world grid.
type ChunkKey struct {
	X int
	Z int
}

func (k ChunkKey) String() string {
	return fmt.Sprintf("chunk_%d_%d", k.X, k.Z)
}

// ChunkState is the streaming lifecycle of one chunk.
type ChunkState int

const (
	ChunkUnloaded ChunkState = iota
	ChunkLoading
	ChunkLoaded
)

func (s ChunkState) String() string {
	switch s {
	case ChunkLoading:
		return "loading"
	case ChunkLoaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// Chunk is one resident grid cell: its scene parent node and lifecycle
// state. Outstanding work items are tracked in the queue's side table, not
// here, so chunk and item never hold pointers to each other.
type Chunk struct {
	Key   ChunkKey
	State ChunkState
	Node  *scene.Node
}

// Options tunes the streaming behavior. Zero values fall back to defaults.
type Options struct {
	ChunkSize       float64       // cell edge length, meters
	LoadRadius      float64       // observer distance at which a chunk loads
	UnloadRadius    float64       // must exceed LoadRadius (hysteresis)
	DetailRadius    float64       // records nearer than this generate detailed
	EvalInterval    time.Duration // how often chunk membership is re-evaluated
	MaxLoadsPerEval int           // new chunks admitted per evaluation
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = 64
	}
	if o.LoadRadius <= 0 {
		o.LoadRadius = 160
	}
	if o.UnloadRadius <= o.LoadRadius {
		o.UnloadRadius = o.LoadRadius * 1.25
	}
	if o.DetailRadius <= 0 {
		o.DetailRadius = o.LoadRadius / 2
	}
	if o.EvalInterval <= 0 {
		o.EvalInterval = 250 * time.Millisecond
	}
	if o.MaxLoadsPerEval <= 0 {
		o.MaxLoadsPerEval = 4
	}
	return o
}

// ManagerStats are the streaming counters exposed to ticks and the stats
// endpoint.
type ManagerStats struct {
	Resident     int    `json:"resident"`
	Loading      int    `json:"loading"`
	Loads        uint64 `json:"loads"`
	Unloads      uint64 `json:"unloads"`
	RefusedLoads uint64 `json:"refused_loads"`
}

// ChunkManager partitions feature records into grid chunks and streams them
// in and out around a moving observer. It is the sole producer of work items
// and owns every chunk node under its root.
type ChunkManager struct {
	opts    Options
	queue   *LoadingQueue
	mats    *material.Resolver
	terrain building.TerrainSampler
	params  *building.Params

	root     *scene.Node
	index    map[ChunkKey][]mapdata.Record
	chunks   map[ChunkKey]*Chunk
	observer geo.Point2D

	lastEval  time.Time
	evaluated bool
	stats     ManagerStats
	log       *zap.Logger
}

// NewChunkManager indexes the records into grid cells. Nothing loads until
// the first Tick.
func NewChunkManager(records []mapdata.Record, opts Options, queue *LoadingQueue, mats *material.Resolver, terrain building.TerrainSampler, params *building.Params) *ChunkManager {
	m := &ChunkManager{
		opts:    opts.withDefaults(),
		queue:   queue,
		mats:    mats,
		terrain: terrain,
		params:  params,
		root:    scene.NewRoot("world"),
		index:   make(map[ChunkKey][]mapdata.Record),
		chunks:  make(map[ChunkKey]*Chunk),
		log:     zap.L().With(zap.String("component", "stream.chunks")),
	}
	for _, rec := range records {
		key := m.KeyFor(rec.Center)
		m.index[key] = append(m.index[key], rec)
	}
	return m
}

// Root returns the scene root all chunk nodes attach under.
func (m *ChunkManager) Root() *scene.Node { return m.root }

// Observer returns the current observer position.
func (m *ChunkManager) Observer() geo.Point2D { return m.observer }

// SetObserver moves the observer. Chunk membership reacts on the next
// evaluation, not immediately.
func (m *ChunkManager) SetObserver(p geo.Point2D) { m.observer = p }

// KeyFor maps a world position to its chunk key.
func (m *ChunkManager) KeyFor(p geo.Point2D) ChunkKey {
	return ChunkKey{
		X: int(math.Floor(p.X / m.opts.ChunkSize)),
		Z: int(math.Floor(p.Z / m.opts.ChunkSize)),
	}
}

func (m *ChunkManager) chunkCenter(key ChunkKey) geo.Point2D {
	return geo.Pt(
		(float64(key.X)+0.5)*m.opts.ChunkSize,
		(float64(key.Z)+0.5)*m.opts.ChunkSize,
	)
}

// Chunks returns the resident chunks keyed by cell.
func (m *ChunkManager) Chunks() map[ChunkKey]*Chunk { return m.chunks }

// Stats returns the streaming counters.
func (m *ChunkManager) Stats() ManagerStats {
	s := m.stats
	s.Resident = len(m.chunks)
	s.Loading = 0
	for _, ch := range m.chunks {
		if ch.State == ChunkLoading {
			s.Loading++
		}
	}
	return s
}

// Tick is the per-frame entry point: re-evaluates chunk membership when the
// interval has elapsed, then drains the queue within the budget. Returns the
// number of items executed.
func (m *ChunkManager) Tick(now time.Time, budgetMS float64) int {
	if !m.evaluated || now.Sub(m.lastEval) >= m.opts.EvalInterval {
		m.evaluate()
		m.lastEval = now
		m.evaluated = true
	}
	n := m.queue.Process(budgetMS)
	for _, ch := range m.chunks {
		if ch.State == ChunkLoading && m.queue.PendingForChunk(ch.Key) == 0 {
			ch.State = ChunkLoaded
		}
	}
	return n
}

// Teardown unloads every resident chunk and cancels all outstanding work.
func (m *ChunkManager) Teardown() {
	for key, ch := range m.chunks {
		m.queue.CancelChunk(key)
		ch.Node.Detach()
		delete(m.chunks, key)
		m.stats.Unloads++
	}
}

// evaluate applies the hysteresis radii: resident chunks past the unload
// radius are torn down, then the nearest non-resident chunks inside the load
// radius begin loading, at most MaxLoadsPerEval of them.
func (m *ChunkManager) evaluate() {
	for key, ch := range m.chunks {
		if m.chunkCenter(key).Distance(m.observer) > m.opts.UnloadRadius {
			m.unloadChunk(ch)
		}
	}

	type candidate struct {
		key  ChunkKey
		dist float64
	}
	var wanted []candidate
	for key := range m.index {
		if _, resident := m.chunks[key]; resident {
			continue
		}
		if d := m.chunkCenter(key).Distance(m.observer); d <= m.opts.LoadRadius {
			wanted = append(wanted, candidate{key, d})
		}
	}
	sort.Slice(wanted, func(i, j int) bool {
		if wanted[i].dist != wanted[j].dist {
			return wanted[i].dist < wanted[j].dist
		}
		if wanted[i].key.X != wanted[j].key.X {
			return wanted[i].key.X < wanted[j].key.X
		}
		return wanted[i].key.Z < wanted[j].key.Z
	})

	loads := 0
	for _, c := range wanted {
		if loads >= m.opts.MaxLoadsPerEval {
			break
		}
		if !m.loadChunk(c.key) {
			break // queue is saturated; retry on a later evaluation
		}
		loads++
	}
}

// loadChunk attaches a chunk node and enqueues one work item per record.
// If the queue overflows midway the whole chunk load is refused and rolled
// back; a half-loaded chunk would defeat the Loading→Loaded accounting.
func (m *ChunkManager) loadChunk(key ChunkKey) bool {
	node := scene.NewNode(0, key.String())
	m.root.AddChild(node)
	ch := &Chunk{Key: key, State: ChunkLoading, Node: node}
	m.chunks[key] = ch

	for _, rec := range m.index[key] {
		if err := m.queue.Enqueue(m.newItem(rec, ch)); err != nil {
			m.log.Warn("refusing chunk load",
				zap.String("chunk", key.String()),
				zap.Error(err))
			m.unloadChunk(ch)
			m.stats.Unloads--
			m.stats.RefusedLoads++
			return false
		}
	}
	m.stats.Loads++
	m.log.Debug("chunk loading",
		zap.String("chunk", key.String()),
		zap.Int("records", len(m.index[key])))
	return true
}

func (m *ChunkManager) unloadChunk(ch *Chunk) {
	m.queue.CancelChunk(ch.Key)
	ch.Node.Detach()
	delete(m.chunks, ch.Key)
	ch.State = ChunkUnloaded
	m.stats.Unloads++
}

func (m *ChunkManager) newItem(rec mapdata.Record, ch *Chunk) *WorkItem {
	dist := rec.Center.Distance(m.observer)
	it := &WorkItem{
		ID:       rec.ID,
		Kind:     rec.Kind,
		Chunk:    ch.Key,
		Record:   rec,
		Parent:   ch.Node,
		Priority: dist,
	}
	if rec.Kind == mapdata.KindBuilding {
		detailed := dist <= m.opts.DetailRadius
		it.Estimate = building.EstimateCost(rec, detailed)
		it.Run = func(it *WorkItem) {
			ctx := building.DeriveContext(it.Record, m.terrain, m.params, detailed)
			res := building.Generate(it.Record, ctx)
			it.Parent.AddChild(scene.BuildFeatureNode(it.Record, res, m.mats))
		}
	} else {
		it.Estimate = building.FlatCost(rec)
		it.Run = func(it *WorkItem) {
			res := building.GenerateFlat(it.Record, m.terrain)
			it.Parent.AddChild(scene.BuildFeatureNode(it.Record, res, m.mats))
		}
	}
	return it
}
