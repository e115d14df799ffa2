// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package dlog

import (
	"container/ring"
	"sync"
)

// Ring is an io.Writer sink that keeps the most recent size lines in memory.
// Add it with AddLogger to keep a bounded diagnostic history that the daemon
// can surface on demand.
type Ring struct {
	size int

	// guards below
	mu sync.Mutex
	r  *ring.Ring
}

func NewRing(size int) *Ring {
	return &Ring{
		r:    ring.New(size),
		size: size,
	}
}

// Write stores one line, overwriting the oldest once the ring is full.
func (l *Ring) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.r = l.r.Next()
	l.r.Value = string(p)

	return len(p), nil
}

// Dump returns the stored lines from oldest to newest.
func (l *Ring) Dump() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]string, 0, l.size)

	l.r.Next().Do(func(v interface{}) {
		if v == nil {
			return
		}

		res = append(res, v.(string))
	})

	return res
}
