// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix provides square row-major float64 matrices and the random
// fills used by the multiplication benchmarks: a fully dense fill and a
// half-sparse fill where rows past the midpoint are mostly zero.
package matrix

import (
	"fmt"
	"math/rand"
)

const (
	// RandMax bounds the value draw; fills produce values in [0, RandMax/10).
	RandMax = 1<<31 - 1

	// SparseFactor is the percentage of cells forced to zero in the sparse
	// rows of a half-sparse matrix.
	SparseFactor = 80
)

// Matrix is a square n×n matrix backed by one contiguous row-major buffer.
// Cell (i, j) lives at data[i*n+j].
type Matrix struct {
	n    int
	data []float64
}

// New allocates a zero-filled n×n matrix. It panics if n is not positive;
// matrix size is a precondition of the whole benchmark, not a recoverable
// input.
func New(n int) *Matrix {
	if n <= 0 {
		panic(fmt.Sprintf("matrix: non-positive size %d", n))
	}
	return &Matrix{n: n, data: make([]float64, n*n)}
}

// N returns the matrix order.
func (m *Matrix) N() int { return m.n }

// Data returns the backing row-major buffer.
func (m *Matrix) Data() []float64 { return m.data }

// Row returns the backing slice of row i.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// At returns cell (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Set stores v at cell (i, j).
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.n+j] = v }

// Add accumulates v onto cell (i, j).
func (m *Matrix) Add(i, j int, v float64) { m.data[i*m.n+j] += v }

// FillDense overwrites every cell with an independent uniform draw from
// [0, RandMax/10). The generator is passed in so fills are reproducible.
func (m *Matrix) FillDense(rng *rand.Rand) {
	for i := range m.data {
		m.data[i] = rng.Float64() * RandMax / 10
	}
}

// FillSparse overwrites the matrix with the half-sparse pattern: rows
// i <= n/2 are filled exactly like FillDense; in rows i > n/2 each cell is
// forced to zero with probability SparseFactor/100, decided by a fresh draw
// per cell, and otherwise drawn like a dense cell.
func (m *Matrix) FillSparse(rng *rand.Rand) {
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		for j := range row {
			if i > m.n/2 && rng.Intn(100) < SparseFactor {
				row[j] = 0
				continue
			}
			row[j] = rng.Float64() * RandMax / 10
		}
	}
}

// NonZeros counts cells holding a non-zero value.
func (m *Matrix) NonZeros() int {
	nnz := 0
	for _, v := range m.data {
		if v != 0 {
			nnz++
		}
	}
	return nnz
}

// Bytes returns the size of the backing buffer in bytes.
func (m *Matrix) Bytes() uint64 {
	return uint64(len(m.data)) * 8
}
