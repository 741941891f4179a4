// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Package bench drives timed kernel runs: one discarded warm-up iteration
// followed by a fixed number of timed iterations, each printed as a
// "<label>: <seconds>" line as soon as it completes.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"
)

// Iterations is the number of timed iterations per kernel.
const Iterations = 5

// Result holds the timed samples of one benchmark.
type Result struct {
	label string
	dur   []time.Duration
	lat   []float64 // cached float view for the stats library
}

// Run executes fn iterations+1 times. Iteration 0 primes caches and is
// discarded; every later iteration is wrapped in wall-clock timers and its
// elapsed seconds printed to w immediately, before the next iteration
// starts. The accumulated samples are returned.
func Run(w io.Writer, label string, iterations int, fn func()) *Result {
	r := &Result{
		label: label,
		dur:   make([]time.Duration, 0, iterations),
	}

	for it := 0; it <= iterations; it++ {
		start := time.Now()
		fn()
		elapsed := time.Since(start)
		if it == 0 {
			continue
		}
		r.dur = append(r.dur, elapsed)
		fmt.Fprintf(w, "%s: %f\n", label, elapsed.Seconds())
	}

	return r
}

// Label returns the benchmark's output label.
func (r *Result) Label() string { return r.label }

// Samples returns the timed durations in run order.
func (r *Result) Samples() []time.Duration { return r.dur }

func (r *Result) toFloats() []float64 {
	if r.lat == nil {
		r.lat = make([]float64, len(r.dur))
		for i, d := range r.dur {
			r.lat[i] = d.Seconds()
		}
	}
	return r.lat
}

// Mean returns the mean iteration latency.
func (r *Result) Mean() time.Duration {
	m, err := stats.Mean(r.toFloats())
	if err != nil {
		return 0
	}
	return time.Duration(m * float64(time.Second))
}

// Min returns the fastest iteration.
func (r *Result) Min() time.Duration {
	m, err := stats.Min(r.toFloats())
	if err != nil {
		return 0
	}
	return time.Duration(m * float64(time.Second))
}

// Max returns the slowest iteration.
func (r *Result) Max() time.Duration {
	m, err := stats.Max(r.toFloats())
	if err != nil {
		return 0
	}
	return time.Duration(m * float64(time.Second))
}

// Stddev returns the sample standard deviation of the iteration latencies.
func (r *Result) Stddev() time.Duration {
	m, err := stats.StandardDeviation(r.toFloats())
	if err != nil {
		return 0
	}
	return time.Duration(m * float64(time.Second))
}

// Summary renders a one-line digest of the samples.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s: %d iteration(s): mean %v min %v max %v stddev %v",
		r.label, len(r.dur), r.Mean(), r.Min(), r.Max(), r.Stddev())
}
