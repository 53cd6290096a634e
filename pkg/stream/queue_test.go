package stream

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/scene"
)

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	m.Run()
}

// frozenQueue returns a queue whose clock never advances, so budget
// accounting depends only on item estimates.
func frozenQueue(max int) *LoadingQueue {
	q := NewLoadingQueue(max)
	base := time.Unix(0, 0)
	q.now = func() time.Time { return base }
	return q
}

func recordingItem(id int64, priority, estimate float64, order *[]int64) *WorkItem {
	return &WorkItem{
		ID:       id,
		Chunk:    ChunkKey{0, 0},
		Priority: priority,
		Estimate: estimate,
		Run:      func(it *WorkItem) { *order = append(*order, it.ID) },
	}
}

func TestProcessPriorityOrdering(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	for _, p := range []float64{30, 10, 50, 20, 40} {
		require.NoError(t, q.Enqueue(recordingItem(int64(p), p, 0.1, &order)))
	}

	n := q.Process(1000)
	assert.Equal(t, 5, n)
	assert.Equal(t, []int64{10, 20, 30, 40, 50}, order)
}

func TestProcessFIFOAmongEquals(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	for id := int64(1); id <= 4; id++ {
		require.NoError(t, q.Enqueue(recordingItem(id, 7, 0.1, &order)))
	}

	q.Process(1000)
	assert.Equal(t, []int64{1, 2, 3, 4}, order, "equal priorities must drain FIFO")
}

func TestProcessBudgetSplit(t *testing.T) {
	// 10 items at 1ms each against a 5ms budget: exactly half per call,
	// priority order preserved across the split.
	q := frozenQueue(100)
	var order []int64
	for id := int64(1); id <= 10; id++ {
		require.NoError(t, q.Enqueue(recordingItem(id, float64(id), 1, &order)))
	}

	assert.Equal(t, 5, q.Process(5))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, order)

	assert.Equal(t, 5, q.Process(5))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, order)
	assert.Equal(t, 0, q.Len())
}

func TestProcessOversizedItemStillRuns(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	require.NoError(t, q.Enqueue(recordingItem(1, 1, 8, &order)))

	assert.Equal(t, 1, q.Process(5), "an item exceeding the whole budget must not starve")
	assert.Equal(t, []int64{1}, order)
}

func TestProcessOversizedItemDefersAfterFirst(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	require.NoError(t, q.Enqueue(recordingItem(1, 1, 1, &order)))
	require.NoError(t, q.Enqueue(recordingItem(2, 2, 8, &order)))

	assert.Equal(t, 1, q.Process(5), "the oversized second item waits for its own frame")
	assert.Equal(t, 1, q.Process(5))
	assert.Equal(t, []int64{1, 2}, order)
}

func TestEnqueueDedup(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	require.NoError(t, q.Enqueue(recordingItem(9, 1, 1, &order)))
	require.NoError(t, q.Enqueue(recordingItem(9, 2, 1, &order)))

	assert.Equal(t, 1, q.Len(), "same id must never be queued twice")
	assert.Equal(t, uint64(1), q.Stats().Deduped)

	// Once executed, the id may be enqueued again.
	q.Process(1000)
	require.NoError(t, q.Enqueue(recordingItem(9, 1, 1, &order)))
	assert.Equal(t, 1, q.Len())
}

func TestEnqueueOverflow(t *testing.T) {
	q := frozenQueue(2)
	var order []int64
	require.NoError(t, q.Enqueue(recordingItem(1, 1, 1, &order)))
	require.NoError(t, q.Enqueue(recordingItem(2, 2, 1, &order)))

	err := q.Enqueue(recordingItem(3, 3, 1, &order))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrQueueOverflow))
	assert.Equal(t, uint64(1), q.Stats().Overflows)
	assert.Equal(t, 2, q.Len())
}

func TestCancelChunk(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	keep := ChunkKey{0, 0}
	gone := ChunkKey{1, 0}

	a := recordingItem(1, 1, 1, &order)
	b := recordingItem(2, 2, 1, &order)
	b.Chunk = gone
	c := recordingItem(3, 3, 1, &order)
	c.Chunk = gone
	for _, it := range []*WorkItem{a, b, c} {
		require.NoError(t, q.Enqueue(it))
	}

	assert.Equal(t, 2, q.CancelChunk(gone))
	assert.Equal(t, 0, q.PendingForChunk(gone))
	assert.Equal(t, StateCancelled, b.State())
	assert.Equal(t, StateCancelled, c.State())

	assert.Equal(t, 1, q.PendingForChunk(keep))
	q.Process(1000)
	assert.Equal(t, []int64{1}, order, "cancelled items must never execute")
	assert.Equal(t, 0, q.Len())
}

func TestProcessDropsStaleParent(t *testing.T) {
	q := frozenQueue(100)
	parent := scene.NewNode(0, "chunk_0_0") // never attached to a root

	ran := false
	it := &WorkItem{
		ID:       1,
		Chunk:    ChunkKey{0, 0},
		Parent:   parent,
		Estimate: 1,
		Run:      func(*WorkItem) { ran = true },
	}
	require.NoError(t, q.Enqueue(it))

	assert.Equal(t, 0, q.Process(1000))
	assert.False(t, ran, "work for a torn-down parent must be skipped")
	assert.Equal(t, StateCancelled, it.State())
	assert.Equal(t, uint64(1), q.Stats().Dropped)
}

func TestStatsCounters(t *testing.T) {
	q := frozenQueue(100)
	var order []int64
	require.NoError(t, q.Enqueue(recordingItem(1, 1, 1, &order)))
	require.NoError(t, q.Enqueue(recordingItem(2, 2, 1, &order)))
	q.Process(1000)

	s := q.Stats()
	assert.Equal(t, uint64(2), s.Enqueued)
	assert.Equal(t, uint64(2), s.Executed)
	assert.Equal(t, 0, s.Pending)
}
