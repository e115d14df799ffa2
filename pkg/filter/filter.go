// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package filter implements the per-level admission test applied on both the
// emitter side and the consumer side. A nil Filter admits everything, so
// optional filtering is expressed by absence rather than a sentinel value.
package filter

// Filter drops records whose level exceeds Level.
type Filter struct {
	Level uint8
}

func New(level uint8) *Filter {
	return &Filter{Level: level}
}

// FilteredOut reports whether a record at level should be dropped. Safe to
// call on a nil filter.
func (f *Filter) FilteredOut(level uint8) bool {
	if f == nil {
		return false
	}

	return level > f.Level
}
