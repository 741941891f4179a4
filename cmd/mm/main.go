// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Command mm benchmarks three parallel matrix-multiplication strategies on
// the local machine: one parallel region over the outer loop (mult1), a
// region reopened for every row (mult2), and a sparse multiply whose row
// scheduling policy is selectable (sparsemult).
//
// Usage:
//
//	mm [-sched static|dynamic|guided] [-workers n] [-seed s] <matrix size>
//
// Per-iteration latencies go to stdout, one "<label>: <seconds>" line per
// timed iteration; everything else (banner, profile dumps, summaries) goes
// to stderr.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/cpu"

	"github.com/lapesd/mmbench/bench"
	"github.com/lapesd/mmbench/kernel"
	"github.com/lapesd/mmbench/matrix"
	"github.com/lapesd/mmbench/profile"
	"github.com/lapesd/mmbench/sched"
)

var (
	schedFlag   = flag.String("sched", "static", "scheduling policy for the sparse kernel (static, dynamic or guided)")
	workersFlag = flag.Int("workers", 0, "worker pool size (0 means all processors)")
	seedFlag    = flag.Int64("seed", 1, "seed for the random matrix fills")
)

// usage prints the invocation synopsis and terminates successfully, the
// benchmark's historical contract for a missing or malformed size.
func usage() {
	fmt.Println("usage: mm [-sched static|dynamic|guided] [-workers n] [-seed s] <matrix size>")
	os.Exit(0)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "mm: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	n, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		usage()
	}
	if n <= 0 {
		fatalf("matrix size must be positive, got %d", n)
	}

	pol, err := sched.Parse(*schedFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mm:", err)
		os.Exit(2)
	}

	workers := *workersFlag
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	prof := profile.Setup(workers)
	pool := sched.NewPool(workers, prof)
	defer pool.Close()

	rng := rand.New(rand.NewSource(*seedFlag))

	a1 := matrix.New(n)
	a1.FillDense(rng)
	b := matrix.New(n)
	b.FillDense(rng)
	c1 := matrix.New(n)
	c1.FillDense(rng)
	c2 := matrix.New(n)
	c2.FillDense(rng)
	c3 := matrix.New(n)
	c3.FillDense(rng)
	a2 := matrix.New(n)
	a2.FillSparse(rng)

	fmt.Fprintf(os.Stderr, "mm: n=%d sched=%s workers=%d seed=%d matrices=%s sparse-nnz=%d/%d avx2=%v asimd=%v\n",
		n, pol, workers, *seedFlag, humanize.IBytes(6*a1.Bytes()), a2.NonZeros(), n*n,
		cpu.X86.HasAVX2, cpu.ARM64.HasASIMD)

	mult := kernel.New(pool, prof)

	// The accumulators are filled, not zeroed, and are never reset between
	// iterations; each timed iteration piles another product on top. That
	// is the measured workload.
	r1 := bench.Run(os.Stdout, "mult1", bench.Iterations, func() { mult.Outer(c1, a1, b) })
	r2 := bench.Run(os.Stdout, "mult2", bench.Iterations, func() { mult.Inner(c2, a1, b) })
	r3 := bench.Run(os.Stdout, "sparsemult", bench.Iterations, func() { mult.Sparse(c3, a2, b, pol) })

	for _, r := range []*bench.Result{r1, r2, r3} {
		fmt.Fprintln(os.Stderr, r.Summary())
	}
}
