// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsOneLinePerTimedIteration(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	r := Run(&out, "mult1", 5, func() { calls++ })

	// The warm-up iteration executes but is never printed.
	assert.Equal(t, 6, calls)
	assert.Len(t, r.Samples(), 5)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	for i, line := range lines {
		label, val, ok := strings.Cut(line, ": ")
		require.True(t, ok, "line %q", line)
		assert.Equal(t, "mult1", label)

		secs, err := strconv.ParseFloat(val, 64)
		require.NoError(t, err, "line %q", line)
		assert.GreaterOrEqual(t, secs, 0.0)
		assert.InDelta(t, r.Samples()[i].Seconds(), secs, 1e-6)
	}
}

func TestRunLinesAppearImmediately(t *testing.T) {
	var out bytes.Buffer
	it := 0

	Run(&out, "k", 2, func() {
		switch it {
		case 1:
			// First timed iteration: nothing printed before the call.
			assert.Empty(t, out.String())
		case 2:
			// Second timed iteration: the first line already flushed.
			assert.Equal(t, 1, strings.Count(out.String(), "k: "))
		}
		it++
	})

	assert.Equal(t, 2, strings.Count(out.String(), "k: "))
}

func TestRunZeroIterations(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	r := Run(&out, "k", 0, func() { calls++ })

	assert.Equal(t, 1, calls, "warm-up still runs")
	assert.Empty(t, out.String())
	assert.Empty(t, r.Samples())
}

func TestResultStats(t *testing.T) {
	var out bytes.Buffer
	r := Run(&out, "k", 4, func() { time.Sleep(time.Millisecond) })

	require.Len(t, r.Samples(), 4)
	assert.GreaterOrEqual(t, r.Min(), time.Millisecond)
	assert.LessOrEqual(t, r.Min(), r.Mean())
	assert.LessOrEqual(t, r.Mean(), r.Max())
	assert.GreaterOrEqual(t, r.Stddev(), time.Duration(0))

	assert.Equal(t, "k", r.Label())
	summary := r.Summary()
	assert.Contains(t, summary, "k: 4 iteration(s)")
	assert.Contains(t, summary, "mean")
}
