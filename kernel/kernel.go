// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Package kernel implements the three benchmarked matrix-multiplication
// variants. All of them accumulate c[i][j] += Σ_k a[i][k]*b[k][j] over
// square matrices; they differ only in where the parallel region sits and
// how its iterations are scheduled:
//
//   - Outer opens one region for the whole call and partitions rows.
//   - Inner opens a fresh region (and pool) for every row, partitioning
//     columns — a deliberate contrast case paying pool start-up cost n
//     times.
//   - Sparse partitions rows under an injected scheduling policy and skips
//     the multiply-accumulate for zero cells of a.
//
// The accumulator is never cleared: repeated calls pile further products
// onto c. Dense operands are read concurrently without synchronization;
// each worker owns disjoint cells of c under every partition, so the
// kernels are lock-free.
package kernel

import (
	"fmt"

	"github.com/lapesd/mmbench/matrix"
	"github.com/lapesd/mmbench/profile"
	"github.com/lapesd/mmbench/sched"
)

// Mult runs multiplication kernels on a shared worker pool, flushing the
// profiler once per kernel invocation.
type Mult struct {
	pool *sched.Pool
	prof *profile.Profile
}

// New returns a Mult backed by pool. prof may be nil to disable profiling
// dumps.
func New(pool *sched.Pool, prof *profile.Profile) *Mult {
	return &Mult{pool: pool, prof: prof}
}

// Outer computes c += a*b with a single parallel region spanning the whole
// call. The row index is partitioned once, statically, across the pool;
// each worker runs the full column and depth loops for its rows.
func (m *Mult) Outer(c, a, b *matrix.Matrix) {
	n := order(c, a, b)
	ad, bd, cd := a.Data(), b.Data(), c.Data()

	m.pool.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			arow := ad[i*n : (i+1)*n]
			crow := cd[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					sum += arow[k] * bd[k*n+j]
				}
				crow[j] += sum
			}
		}
	})

	m.dump()
}

// Inner computes c += a*b opening and closing a parallel region for every
// row: a fresh pool is spun up per value of i, partitions the column index
// for that row, and is torn down again. The n-fold region entry/exit cost
// is the point of the measurement, so the per-row pool is intentional.
func (m *Mult) Inner(c, a, b *matrix.Matrix) {
	n := order(c, a, b)
	ad, bd, cd := a.Data(), b.Data(), c.Data()
	workers := m.pool.NumWorkers()

	for i := 0; i < n; i++ {
		arow := ad[i*n : (i+1)*n]
		crow := cd[i*n : (i+1)*n]

		p := sched.NewPool(workers, m.prof)
		p.For(n, func(lo, hi int) {
			for j := lo; j < hi; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					sum += arow[k] * bd[k*n+j]
				}
				crow[j] += sum
			}
		})
		p.Close()
	}

	m.dump()
}

// Sparse computes c += a*b with a single parallel region whose row
// partition follows pol, skipping every multiply-accumulate where
// a[i][k] == 0. Total work tracks the non-zero density of a rather than
// n³, which is what makes the scheduling policy observable: row cost
// varies, so Static, Dynamic and Guided balance it differently.
func (m *Mult) Sparse(c, a, b *matrix.Matrix, pol sched.Policy) {
	n := order(c, a, b)
	ad, bd, cd := a.Data(), b.Data(), c.Data()

	m.pool.ForSchedule(pol, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			arow := ad[i*n : (i+1)*n]
			crow := cd[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					if aik := arow[k]; aik != 0 {
						sum += aik * bd[k*n+j]
					}
				}
				crow[j] += sum
			}
		}
	})

	m.dump()
}

func (m *Mult) dump() {
	if m.prof != nil {
		m.prof.Dump()
	}
}

// order checks that all three matrices share one size and returns it.
// A mismatch is a precondition violation, not a recoverable error.
func order(c, a, b *matrix.Matrix) int {
	n := c.N()
	if a.N() != n || b.N() != n {
		panic(fmt.Sprintf("kernel: size mismatch c=%d a=%d b=%d", n, a.N(), b.N()))
	}
	return n
}
