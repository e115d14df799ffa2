// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Chain is the directory of consumers, keyed by sender id. It is the
// demultiplexer between the transport's wake-ups and the consumer that
// originated them. One chain per server; construct it explicitly and pass it
// by reference.
type Chain struct {
	first *Consumer

	// senderID asks the transport which client raised the current event.
	senderID func() uint32
}

func NewChain(senderID func() uint32) (*Chain, error) {
	if senderID == nil {
		return nil, logerr.ErrInvalidParameter
	}

	return &Chain{senderID: senderID}, nil
}

// First returns the head of the chain.
func (ch *Chain) First() *Consumer {
	return ch.first
}

// Append places c at the tail of the chain. Appending the current tail again
// is a no-op.
func (ch *Chain) Append(c *Consumer) error {
	if c == nil {
		return logerr.ErrInvalidParameter
	}

	if ch.first == nil {
		ch.first = c
		return nil
	}

	return intrusive.Insert(intrusive.Last(&ch.first.node), &c.node)
}

// Remove unlinks c. If c was the head, the next consumer becomes the new
// head; an emptied chain resets to nil.
func (ch *Chain) Remove(c *Consumer) error {
	if c == nil {
		return logerr.ErrInvalidParameter
	}

	if ch.first == c {
		ch.first = c.Next()
	}

	intrusive.Erase(&c.node)

	return nil
}

// GetSender resolves the transport's current sender id to its consumer, or
// nil when no consumer matches.
func (ch *Chain) GetSender() *Consumer {
	id := ch.senderID()

	for c := ch.first; c != nil; c = c.Next() {
		if c.id == id {
			return c
		}
	}

	return nil
}

// Dispatch is the server hot path, called by the transport on every wake-up:
// resolve the sender, drain its record, acknowledge. Unknown senders are
// dropped silently.
func (ch *Chain) Dispatch() {
	c := ch.GetSender()
	if c == nil {
		dlog.Debug("wake-up from unknown sender")
		return
	}

	c.Process()
	c.Emit()
}

// Poll kicks the head consumer's acknowledgement, for transports that need an
// initial event to start their clients.
func (ch *Chain) Poll() {
	if ch.first == nil {
		return
	}

	ch.first.Emit()
}
