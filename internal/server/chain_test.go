// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"testing"

	"github.com/sandia-minimega/minilogd/pkg/logerr"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func chainIDs(ch *Chain) []uint32 {
	var ids []uint32
	for c := ch.First(); c != nil; c = c.Next() {
		ids = append(ids, c.ID())
	}
	return ids
}

func TestChainAppendRemove(t *testing.T) {
	ch, err := NewChain(func() uint32 { return 0 })
	assert.NilError(t, err)

	subject := NewSubject()
	a, _ := newTestConsumer(t, subject, nil, 1, "a")
	b, _ := newTestConsumer(t, subject, nil, 2, "b")
	c, _ := newTestConsumer(t, subject, nil, 3, "c")

	assert.NilError(t, ch.Append(a))
	assert.NilError(t, ch.Append(b))
	assert.NilError(t, ch.Append(c))
	assert.DeepEqual(t, chainIDs(ch), []uint32{1, 2, 3})

	// appending the tail again is a no-op
	assert.NilError(t, ch.Append(c))
	assert.DeepEqual(t, chainIDs(ch), []uint32{1, 2, 3})

	// removing the head advances it
	assert.NilError(t, ch.Remove(a))
	assert.DeepEqual(t, chainIDs(ch), []uint32{2, 3})

	// removing from the middle keeps the rest linked
	assert.NilError(t, ch.Append(a))
	assert.NilError(t, ch.Remove(c))
	assert.DeepEqual(t, chainIDs(ch), []uint32{2, 1})

	assert.NilError(t, ch.Remove(b))
	assert.NilError(t, ch.Remove(a))
	assert.Assert(t, ch.First() == nil)

	assert.ErrorIs(t, ch.Append(nil), logerr.ErrInvalidParameter)
	assert.ErrorIs(t, ch.Remove(nil), logerr.ErrInvalidParameter)
}

func TestNewChainInvalid(t *testing.T) {
	_, err := NewChain(nil)
	assert.ErrorIs(t, err, logerr.ErrInvalidParameter)
}

// Two consumers registered; the transport reports one sender id; only that
// consumer runs.
func TestChainDemux(t *testing.T) {
	sender := uint32(0)
	ch, err := NewChain(func() uint32 { return sender })
	assert.NilError(t, err)

	var order []string
	subjectA := NewSubject()
	assert.NilError(t, subjectA.Attach(newMockObserver("a", &order)))
	subjectB := NewSubject()
	assert.NilError(t, subjectB.Attach(newMockObserver("b", &order)))

	bufA := newTestBuffer(t)
	a, err := NewConsumer(bufA, nil, ConsumerCallbacks{}, subjectA, nil, 10, "a")
	assert.NilError(t, err)
	bufB := newTestBuffer(t)
	b, err := NewConsumer(bufB, nil, ConsumerCallbacks{}, subjectB, nil, 20, "b")
	assert.NilError(t, err)

	assert.NilError(t, ch.Append(a))
	assert.NilError(t, ch.Append(b))

	writeRecord(t, bufA, 2, "from a")
	writeRecord(t, bufB, 2, "from b")

	sender = 20
	ch.Dispatch()

	// only consumer 20 processed: its page is released, a's record is
	// still in flight
	assert.DeepEqual(t, order, []string{"b"})
	assert.Equal(t, string(bufB.Page()[6:7]), "\x00")
	assert.Equal(t, string(bufA.Page()[6:12]), "from a")
}

func TestChainUnknownSender(t *testing.T) {
	ch, err := NewChain(func() uint32 { return 99 })
	assert.NilError(t, err)

	subject := NewSubject()
	var order []string
	assert.NilError(t, subject.Attach(newMockObserver("a", &order)))

	a, buf := newTestConsumer(t, subject, nil, 10, "a")
	assert.NilError(t, ch.Append(a))

	writeRecord(t, buf, 2, "pending")

	assert.Assert(t, ch.GetSender() == nil)

	// unknown senders are dropped silently and touch nothing
	ch.Dispatch()
	assert.Assert(t, is.Len(order, 0))
	assert.Equal(t, string(buf.Page()[6:13]), "pending")
}

func TestChainPoll(t *testing.T) {
	subject := NewSubject()
	buf := newTestBuffer(t)

	emits := 0
	c, err := NewConsumer(buf, nil, ConsumerCallbacks{
		ServerEmit: func() { emits++ },
	}, subject, nil, 1, "x")
	assert.NilError(t, err)

	ch, err := NewChain(func() uint32 { return 1 })
	assert.NilError(t, err)

	// polling an empty chain is a no-op
	ch.Poll()

	assert.NilError(t, ch.Append(c))
	ch.Poll()
	assert.Equal(t, emits, 1)
}
