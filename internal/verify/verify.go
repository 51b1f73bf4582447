// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verify checks the consistency of sequences of decoded footers.
package verify // import "github.com/go-lpc/ats/internal/verify"

import (
	"fmt"
)

// Tolerance is the inverse of the relative tolerance (5%) applied to the
// spacing of consecutive trigger timestamps.
const Tolerance = 20

// RecordNumbers checks record numbers are consecutive, starting at first.
func RecordNumbers(nums []uint32, first uint32) error {
	for i, got := range nums {
		want := first + uint32(i)
		if got != want {
			return fmt.Errorf(
				"verify: footer %d has record number %d instead of %d",
				i, got, want,
			)
		}
	}
	return nil
}

// Timestamps checks trigger timestamps are increasing and spaced by
// ticks (the expected number of clock ticks between two triggers),
// within Tolerance.
// The first timestamp must not exceed ticks (plus tolerance).
func Timestamps(ts []uint64, ticks uint64) error {
	if len(ts) == 0 {
		return nil
	}

	var (
		tol = ticks / Tolerance
		max = ticks + tol
		min = ticks - tol
	)

	if ts[0] > max {
		return fmt.Errorf(
			"verify: first footer has timestamp %d which is higher than the expected %d",
			ts[0], ticks,
		)
	}

	for i := 1; i < len(ts); i++ {
		if ts[i-1] > ts[i] {
			return fmt.Errorf(
				"verify: timestamp of footer %d (%d) is higher than the next (%d)",
				i-1, ts[i-1], ts[i],
			)
		}
		delta := ts[i] - ts[i-1]
		switch {
		case delta < min:
			return fmt.Errorf(
				"verify: timestamp difference between footer %d and the next (%d) is less than minimum %d",
				i-1, delta, min,
			)
		case delta > max:
			return fmt.Errorf(
				"verify: timestamp difference between footer %d and the next (%d) is more than maximum %d",
				i-1, delta, max,
			)
		}
	}
	return nil
}
