// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

package sched

import "fmt"

// Policy selects how a parallel region's iteration range is partitioned
// across the pool's workers.
type Policy int

const (
	// Static assigns fixed contiguous chunks up front, one per worker.
	Static Policy = iota

	// Dynamic hands out unit chunks on demand as workers finish.
	Dynamic

	// Guided hands out chunks whose size shrinks geometrically with the
	// remaining work, down to single iterations.
	Guided
)

// String returns the policy's flag spelling.
func (p Policy) String() string {
	switch p {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Guided:
		return "guided"
	}
	return fmt.Sprintf("sched.Policy(%d)", int(p))
}

// Parse maps a flag value to a Policy. Exactly the three known spellings
// are accepted; anything else, including the empty string, is an error so
// that a run never starts without an unambiguous policy selection.
func Parse(s string) (Policy, error) {
	switch s {
	case "static":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	case "guided":
		return Guided, nil
	}
	return 0, fmt.Errorf("sched: unknown scheduling policy %q (want static, dynamic or guided)", s)
}
