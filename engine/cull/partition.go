package cull

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for batch partitioning.
const (
	DefaultParallelThreshold = 512
	DefaultChunkSize         = 256
)

// Item is one entity to test.
type Item struct {
	ID       string
	Position mgl32.Vec3
}

// Result lists entity IDs by visibility, in input order.
type Result struct {
	Visible []string
	Hidden  []string
}

type partitionerImpl struct {
	pool      worker.DynamicWorkerPool
	workers   int
	threshold int
	chunkSize int

	closeOnce sync.Once
	closed    atomic.Bool
}

// Partitioner splits a batch of entities into visible and hidden sets. Batches above the
// parallel threshold are tested in chunks on a reusable worker pool; Partition always
// waits for every chunk before returning.
type Partitioner interface {
	// Partition tests every item against pred.
	//
	// Parameters:
	//   - pred: the visibility test
	//   - items: the entities
	//
	// Returns:
	//   - Result: IDs split by visibility
	Partition(pred Predicate, items []Item) Result

	// Workers returns the configured worker count.
	//
	// Returns:
	//   - int: the pool size
	Workers() int

	// Close stops the worker pool. Later batches are tested on the calling goroutine.
	// Safe to call multiple times.
	Close()

	// Closed reports whether Close has been called.
	//
	// Returns:
	//   - bool: true once the pool is stopped
	Closed() bool
}

var _ Partitioner = &partitionerImpl{}

// NewPartitioner creates a Partitioner backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Partitioner: the partitioner
func NewPartitioner(options ...PartitionerBuilderOption) Partitioner {
	p := &partitionerImpl{
		workers:   max(runtime.NumCPU()-1, 1),
		threshold: DefaultParallelThreshold,
		chunkSize: DefaultChunkSize,
	}
	for _, option := range options {
		option(p)
	}
	p.pool = worker.NewDynamicWorkerPool(p.workers, 256, 1*time.Second)
	return p
}

func (p *partitionerImpl) Workers() int {
	return p.workers
}

func (p *partitionerImpl) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.pool.Stop()
	})
}

func (p *partitionerImpl) Closed() bool {
	return p.closed.Load()
}

func (p *partitionerImpl) Partition(pred Predicate, items []Item) Result {
	if pred == nil || len(items) == 0 {
		return Result{}
	}

	visible := make([]bool, len(items))
	if len(items) <= p.threshold || p.workers <= 1 || p.closed.Load() {
		testRange(pred, items, visible, 0, len(items))
		return collect(items, visible)
	}

	// chunks write disjoint ranges of visible, so no locking is needed
	var wg sync.WaitGroup
	taskID := 0
	for lo := 0; lo < len(items); lo += p.chunkSize {
		hi := min(lo+p.chunkSize, len(items))
		wg.Add(1)
		start, end := lo, hi
		p.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				testRange(pred, items, visible, start, end)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	return collect(items, visible)
}

func testRange(pred Predicate, items []Item, visible []bool, lo, hi int) {
	for i := lo; i < hi; i++ {
		pos := items[i].Position
		visible[i] = pred(pos.X(), pos.Y(), pos.Z())
	}
}

func collect(items []Item, visible []bool) Result {
	var r Result
	for i, it := range items {
		if visible[i] {
			r.Visible = append(r.Visible, it.ID)
		} else {
			r.Hidden = append(r.Hidden, it.ID)
		}
	}
	return r
}
