// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Package sched provides a persistent, reusable worker pool whose
// parallel-for primitive partitions an iteration range under a selectable
// scheduling policy. A Pool is created once and reused across many regions;
// a region is fork-join: the caller blocks until every partitioned
// sub-range has completed.
//
// Usage:
//
//	pool := sched.NewPool(runtime.GOMAXPROCS(0), nil)
//	defer pool.Close()
//
//	pool.ForSchedule(sched.Dynamic, n, func(lo, hi int) {
//	    processRows(lo, hi)
//	})
package sched

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Tracer observes worker participation in parallel regions. Start and End
// bracket one worker's share of one region and are matched 1:1. A nil
// Tracer disables tracing.
type Tracer interface {
	Start(worker int)
	End(worker int)
}

// Pool is a fixed-size worker pool. Workers are spawned once at creation
// and persist until Close.
type Pool struct {
	numWorkers int
	tracer     Tracer
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel region.
type workItem struct {
	fn      func(worker int)
	barrier *sync.WaitGroup
}

// NewPool creates a pool with the given number of workers, each bracketing
// its region participation through tr when tr is non-nil. If workers <= 0,
// GOMAXPROCS workers are spawned.
func NewPool(workers int, tr Tracer) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: workers,
		tracer:     tr,
		workC:      make(chan workItem, workers),
	}

	for id := 0; id < workers; id++ {
		go p.worker(id)
	}

	return p
}

// worker is the main loop of one persistent worker goroutine.
func (p *Pool) worker(id int) {
	for item := range p.workC {
		item.fn(id)
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes; calling Close more
// than once is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// For runs one parallel region over [0, n) under the Static policy, the
// pool's default partition.
func (p *Pool) For(n int, body func(lo, hi int)) {
	p.ForSchedule(Static, n, body)
}

// ForSchedule runs one parallel region over [0, n) under the given policy.
// body processes the half-open range [lo, hi) and is never handed
// overlapping ranges, so disjoint output rows need no locking. ForSchedule
// blocks until the whole range has been processed.
func (p *Pool) ForSchedule(pol Policy, n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}

	// A closed or single-worker pool degenerates to a sequential region
	// on the calling goroutine, still bracketed as worker 0.
	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		p.bracket(0, func() { body(0, n) })
		return
	}

	var wg sync.WaitGroup

	switch pol {
	case Static:
		// Fixed contiguous chunks assigned up front.
		chunk := (n + workers - 1) / workers
		for i := 0; i < workers; i++ {
			lo := i * chunk
			if lo >= n {
				break
			}
			hi := min(lo+chunk, n)
			wg.Add(1)
			p.workC <- workItem{
				fn: func(w int) {
					p.bracket(w, func() { body(lo, hi) })
				},
				barrier: &wg,
			}
		}

	case Dynamic:
		// Unit chunks claimed on demand as workers finish.
		var next atomic.Int64
		for k := 0; k < workers; k++ {
			wg.Add(1)
			p.workC <- workItem{
				fn: func(w int) {
					p.bracket(w, func() {
						for {
							i := int(next.Add(1)) - 1
							if i >= n {
								return
							}
							body(i, i+1)
						}
					})
				},
				barrier: &wg,
			}
		}

	case Guided:
		// Chunk size shrinks geometrically with the remaining range.
		var next atomic.Int64
		for k := 0; k < workers; k++ {
			wg.Add(1)
			p.workC <- workItem{
				fn: func(w int) {
					p.bracket(w, func() {
						for {
							lo := next.Load()
							remaining := n - int(lo)
							if remaining <= 0 {
								return
							}
							chunk := max(1, remaining/workers)
							if !next.CompareAndSwap(lo, lo+int64(chunk)) {
								continue
							}
							body(int(lo), int(lo)+chunk)
						}
					})
				},
				barrier: &wg,
			}
		}
	}

	wg.Wait()
}

// bracket runs fn under the worker's Start/End trace markers.
func (p *Pool) bracket(worker int, fn func()) {
	if p.tracer != nil {
		p.tracer.Start(worker)
		defer p.tracer.End(worker)
	}
	fn()
}
