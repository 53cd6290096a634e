package stream

import (
	"container/heap"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/scene"
)

// ErrQueueOverflow signals that an enqueue would exceed the queue's maximum
// size. The producer must shed load (refuse the chunk) instead of growing
// the queue without bound.
var ErrQueueOverflow = eris.New("stream: work queue overflow")

// ItemState tracks a work item through its lifecycle.
type ItemState int

const (
	StateQueued ItemState = iota
	StateExecuting
	StateDone
	StateCancelled
)

func (s ItemState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// WorkItem is one deferred generation task. Priority is the observer
// distance at enqueue time (lower runs sooner); Estimate is the predicted
// execution cost in milliseconds.
type WorkItem struct {
	ID       int64
	Kind     mapdata.Kind
	Chunk    ChunkKey
	Record   mapdata.Record
	Parent   *scene.Node
	Priority float64
	Estimate float64
	Run      func(*WorkItem)

	state ItemState
	seq   uint64
	index int
}

// State returns the item's current lifecycle state.
func (it *WorkItem) State() ItemState { return it.state }

// QueueStats are the queue's monotonic counters plus current depth.
type QueueStats struct {
	Enqueued  uint64 `json:"enqueued"`
	Executed  uint64 `json:"executed"`
	Cancelled uint64 `json:"cancelled"`
	Dropped   uint64 `json:"dropped"`
	Deduped   uint64 `json:"deduped"`
	Overflows uint64 `json:"overflows"`
	Pending   int    `json:"pending"`
}

// LoadingQueue is the frame-budgeted scheduler. Items drain in ascending
// priority order, FIFO among equals. All mutation happens synchronously on
// the caller's update step; the queue carries no locks.
type LoadingQueue struct {
	max     int
	seq     uint64
	items   itemHeap
	byID    map[int64]*WorkItem
	byChunk map[ChunkKey]map[int64]*WorkItem
	stats   QueueStats
	now     func() time.Time
	log     *zap.Logger
}

// NewLoadingQueue creates a queue holding at most max pending items.
func NewLoadingQueue(max int) *LoadingQueue {
	if max < 1 {
		max = 1
	}
	return &LoadingQueue{
		max:     max,
		byID:    make(map[int64]*WorkItem),
		byChunk: make(map[ChunkKey]map[int64]*WorkItem),
		now:     time.Now,
		log:     zap.L().With(zap.String("component", "stream.queue")),
	}
}

// Len returns the number of pending items.
func (q *LoadingQueue) Len() int { return q.items.Len() }

// PendingForChunk returns how many items of one chunk are still queued.
func (q *LoadingQueue) PendingForChunk(key ChunkKey) int {
	return len(q.byChunk[key])
}

// Stats returns a copy of the counters with the current depth filled in.
func (q *LoadingQueue) Stats() QueueStats {
	s := q.stats
	s.Pending = q.items.Len()
	return s
}

// Enqueue admits an item. A feature that already has a pending item is not
// enqueued again; the call is a silent no-op so producers need not track
// in-flight ids themselves.
func (q *LoadingQueue) Enqueue(it *WorkItem) error {
	if _, dup := q.byID[it.ID]; dup {
		q.stats.Deduped++
		return nil
	}
	if q.items.Len() >= q.max {
		q.stats.Overflows++
		q.log.Warn("work queue overflow",
			zap.Int("max", q.max),
			zap.Int64("id", it.ID),
			zap.String("chunk", it.Chunk.String()))
		return ErrQueueOverflow
	}

	it.state = StateQueued
	it.seq = q.seq
	q.seq++
	heap.Push(&q.items, it)
	q.byID[it.ID] = it
	byChunk := q.byChunk[it.Chunk]
	if byChunk == nil {
		byChunk = make(map[int64]*WorkItem)
		q.byChunk[it.Chunk] = byChunk
	}
	byChunk[it.ID] = it
	q.stats.Enqueued++
	return nil
}

// Process drains items in priority order until the budget is spent and
// returns how many executed. The budget is soft: the first item of a call
// always runs, even when its estimate alone exceeds the budget, so no item
// is ever infinitely deferred. Spend is tracked as the larger of wall-clock
// time and accrued estimates, so underestimated items cannot sneak a frame
// past its budget.
func (q *LoadingQueue) Process(budgetMS float64) int {
	start := q.now()
	accrued := 0.0
	executed := 0

	for q.items.Len() > 0 {
		it := q.items[0]
		if executed > 0 {
			wall := float64(q.now().Sub(start)) / float64(time.Millisecond)
			if math.Max(wall, accrued)+it.Estimate > budgetMS {
				break
			}
		}
		heap.Pop(&q.items)
		q.forget(it)

		// A torn-down parent means the chunk unloaded after enqueue;
		// skip silently.
		if it.Parent != nil && !it.Parent.Attached() {
			it.state = StateCancelled
			q.stats.Dropped++
			continue
		}

		it.state = StateExecuting
		if it.Run != nil {
			it.Run(it)
		}
		it.state = StateDone
		q.stats.Executed++
		accrued += it.Estimate
		executed++
	}
	return executed
}

// CancelChunk removes every pending item belonging to a chunk and returns
// how many were cancelled. After it returns, no queued item references the
// chunk.
func (q *LoadingQueue) CancelChunk(key ChunkKey) int {
	pending := q.byChunk[key]
	n := len(pending)
	for _, it := range pending {
		heap.Remove(&q.items, it.index)
		delete(q.byID, it.ID)
		it.state = StateCancelled
	}
	delete(q.byChunk, key)
	q.stats.Cancelled += uint64(n)
	return n
}

func (q *LoadingQueue) forget(it *WorkItem) {
	delete(q.byID, it.ID)
	if byChunk := q.byChunk[it.Chunk]; byChunk != nil {
		delete(byChunk, it.ID)
		if len(byChunk) == 0 {
			delete(q.byChunk, it.Chunk)
		}
	}
}

// itemHeap orders by (priority, enqueue sequence). The sequence tiebreak
// keeps equal-priority items FIFO, which makes draining deterministic and
// starvation-free.
type itemHeap []*WorkItem

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *itemHeap) Push(x any) {
	it := x.(*WorkItem)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}
