package cull

// PartitionerBuilderOption is a functional option for configuring a Partitioner.
type PartitionerBuilderOption func(*partitionerImpl)

// WithWorkers sets the worker pool size. Values below 1 are ignored.
//
// Parameters:
//   - n: number of workers (default NumCPU - 1)
//
// Returns:
//   - PartitionerBuilderOption: option function to apply
func WithWorkers(n int) PartitionerBuilderOption {
	return func(p *partitionerImpl) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithParallelThreshold sets the batch size above which work fans out to the pool.
//
// Parameters:
//   - n: item count (default 512)
//
// Returns:
//   - PartitionerBuilderOption: option function to apply
func WithParallelThreshold(n int) PartitionerBuilderOption {
	return func(p *partitionerImpl) {
		p.threshold = n
	}
}

// WithChunkSize sets how many items each pool task tests. Values below 1 are ignored.
//
// Parameters:
//   - n: items per task (default 256)
//
// Returns:
//   - PartitionerBuilderOption: option function to apply
func WithChunkSize(n int) PartitionerBuilderOption {
	return func(p *partitionerImpl) {
		if n >= 1 {
			p.chunkSize = n
		}
	}
}
