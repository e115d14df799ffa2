// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Observer is an output sink attached to a Subject. Implementations embed an
// intrusive.Node, which provides the Node method.
type Observer interface {
	// Update delivers one collected record. The consumer carries the
	// record slot and, for file sinks, the target log file.
	Update(c *Consumer) error

	Node() *intrusive.Node
}

// Subject publishes collected records to its attached observers in attach
// order. Attach refuses an observer linked into another subject's list; an
// observer that is the only member of another subject has no links, and
// Attach does not detect it.
type Subject struct {
	first *intrusive.Node
}

func NewSubject() *Subject {
	return &Subject{}
}

// Attach appends o to the notification list. An observer that is already
// linked into a different subject is rejected rather than spliced out from
// under it. A sole observer of another subject carries no links and is
// accepted.
func (s *Subject) Attach(o Observer) error {
	if o == nil {
		return logerr.ErrInvalidParameter
	}

	n := o.Node()

	if intrusive.IsInside(s.first, n) {
		return nil
	}
	if n.Linked() {
		return logerr.ErrOperationDenied
	}

	if s.first == nil {
		s.first = n
		return nil
	}

	return intrusive.Insert(intrusive.Last(s.first), n)
}

// Detach unlinks o. If o was the head, the subject advances to its
// successor.
func (s *Subject) Detach(o Observer) error {
	if o == nil {
		return logerr.ErrInvalidParameter
	}

	n := o.Node()

	if s.first == n {
		s.first = n.Next()
	}

	intrusive.Erase(n)

	return nil
}

// Notify delivers c's record to every observer in attach order. A failing
// sink is logged and skipped; the walk never short-circuits.
func (s *Subject) Notify(c *Consumer) {
	if c == nil || s.first == nil {
		return
	}

	for n := s.first; n != nil; n = n.Next() {
		o := n.Owner().(Observer)
		if err := o.Update(c); err != nil {
			dlog.Error("notify %T: %v", o, err)
		}
	}
}
