// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package filter

import "testing"

func TestThreshold(t *testing.T) {
	f := New(3)

	for level := uint8(0); level <= 3; level++ {
		if f.FilteredOut(level) {
			t.Fatalf("level %v at or below threshold should pass", level)
		}
	}

	for _, level := range []uint8{4, 5, 255} {
		if !f.FilteredOut(level) {
			t.Fatalf("level %v above threshold should be dropped", level)
		}
	}
}

func TestNilFilter(t *testing.T) {
	var f *Filter

	for _, level := range []uint8{0, 1, 128, 255} {
		if f.FilteredOut(level) {
			t.Fatalf("nil filter dropped level %v", level)
		}
	}
}
