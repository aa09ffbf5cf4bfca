// Package parallel provides a bounded worker pool for CPU-bound batch
// jobs. The string theory uses it to compile independent symbolic
// transducers concurrently when the frozen operator registry is first
// materialized; each job runs at most once and the batch reports the
// first failure.
package parallel

import (
	"runtime"
	"sync"
)

// Batch runs a fixed set of independent jobs with bounded concurrency.
// Jobs are submitted with Go and the batch is closed out with Wait.
// Unlike a long-lived pool, a Batch is single-use: it exists for one
// fan-out/fan-in cycle and holds no goroutines afterward.
type Batch struct {
	sem     chan struct{}
	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// NewBatch creates a batch with the given concurrency limit.
// A limit of 0 or less defaults to the number of CPU cores.
func NewBatch(limit int) *Batch {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Batch{sem: make(chan struct{}, limit)}
}

// Go schedules one job. It blocks while the concurrency limit is
// saturated, providing natural backpressure for large batches.
// The first non-nil error wins; later jobs still run to completion so
// Wait never leaks goroutines.
func (b *Batch) Go(job func() error) {
	b.sem <- struct{}{}
	b.wg.Add(1)
	go func() {
		defer func() {
			<-b.sem
			b.wg.Done()
		}()
		if err := job(); err != nil {
			b.errOnce.Do(func() { b.err = err })
		}
	}()
}

// Wait blocks until all scheduled jobs have finished and returns the
// first error observed, or nil when every job succeeded.
func (b *Batch) Wait() error {
	b.wg.Wait()
	return b.err
}
