// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Package profile records per-worker active time across parallel regions
// and prints a summary when dumped. Each worker owns one slot and brackets
// its participation in a region with Start/End, so recording needs no
// locking. Dumps go to stderr by default; the benchmark's measurement
// lines own stdout.
package profile

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/montanaflynn/stats"
)

// Profile accumulates per-worker timing brackets. It implements
// sched.Tracer.
type Profile struct {
	// Out receives Dump output. Defaults to stderr.
	Out io.Writer

	workers []slot
}

// slot is one worker's accumulated state. Written only by the goroutine
// currently holding that worker id.
type slot struct {
	openedAt time.Time
	active   time.Duration
	regions  int
}

// Setup creates a profile with one slot per worker. Call once at process
// start, sized to the pool.
func Setup(workers int) *Profile {
	if workers <= 0 {
		workers = 1
	}
	return &Profile{
		Out:     os.Stderr,
		workers: make([]slot, workers),
	}
}

// Workers returns the number of tracked workers.
func (p *Profile) Workers() int {
	return len(p.workers)
}

// Start marks worker w entering a parallel region.
func (p *Profile) Start(w int) {
	p.workers[w].openedAt = time.Now()
}

// End marks worker w leaving a parallel region, folding the bracket into
// its active time. Every End matches a prior Start on the same worker.
func (p *Profile) End(w int) {
	s := &p.workers[w]
	s.active += time.Since(s.openedAt)
	s.regions++
}

// Active returns worker w's accumulated active time since the last Dump.
func (p *Profile) Active(w int) time.Duration {
	return p.workers[w].active
}

// Regions returns how many brackets worker w has closed since the last
// Dump.
func (p *Profile) Regions(w int) int {
	return p.workers[w].regions
}

// Dump prints the accumulated per-worker active times and a mean/min/max
// digest, then resets every slot. Called once per kernel invocation.
func (p *Profile) Dump() {
	active := make([]float64, 0, len(p.workers))
	for w := range p.workers {
		s := &p.workers[w]
		fmt.Fprintf(p.Out, "profile: worker %d: active %v in %d region(s)\n", w, s.active, s.regions)
		if s.regions > 0 {
			active = append(active, float64(s.active.Microseconds())/1000.0)
		}
		p.workers[w] = slot{}
	}

	if len(active) == 0 {
		return
	}
	mean, err := stats.Mean(active)
	if err != nil {
		fmt.Fprintf(p.Out, "profile: stats: %v\n", err)
		return
	}
	lo, err := stats.Min(active)
	if err != nil {
		fmt.Fprintf(p.Out, "profile: stats: %v\n", err)
		return
	}
	hi, err := stats.Max(active)
	if err != nil {
		fmt.Fprintf(p.Out, "profile: stats: %v\n", err)
		return
	}
	fmt.Fprintf(p.Out, "profile: %d active worker(s): mean %.3fms min %.3fms max %.3fms\n", len(active), mean, lo, hi)
}
