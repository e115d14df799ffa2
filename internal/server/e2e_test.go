// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"bytes"
	"testing"

	"github.com/sandia-minimega/minilogd/pkg/emitter"
	"github.com/sandia-minimega/minilogd/pkg/filter"
	"github.com/sandia-minimega/minilogd/pkg/format"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"

	"gotest.tools/v3/assert"
)

// The full path: emitter renders into the shared page, raises the event, the
// chain demultiplexes, the consumer collects, and the console sink prints
// the line.
func TestEndToEnd(t *testing.T) {
	buf := newTestBuffer(t)

	fm := format.New()
	subject := NewSubject()

	var out bytes.Buffer
	console, err := NewConsole(fm, &out)
	assert.NilError(t, err)
	assert.NilError(t, subject.Attach(console))

	c, err := NewConsumer(buf, nil, ConsumerCallbacks{
		GetTimestamp: func() timestamp.Timestamp { return testStamp },
	}, subject, nil, 42, "main")
	assert.NilError(t, err)

	sender := uint32(0)
	ch, err := NewChain(func() uint32 { return sender })
	assert.NilError(t, err)
	assert.NilError(t, ch.Append(c))

	em, err := emitter.New(buf, nil, emitter.Callbacks{
		Emit: func() {
			sender = 42
			ch.Dispatch()
		},
	})
	assert.NilError(t, err)

	assert.NilError(t, em.Log(5, "hello %d", 7))

	want := "000042 main           01.08.2026-17:02:03   0   5 hello 7\n"
	assert.Equal(t, out.String(), want)

	// the page is clear again; a second record flows through cleanly
	assert.NilError(t, em.Log(4, "bye"))
	assert.Equal(t, out.String(),
		want+"000042 main           01.08.2026-17:02:03   0   4 bye\n")
}

// Emitter-side and server-side filters compose: the emitter drops without
// signalling, the server drops after consuming.
func TestEndToEndFiltered(t *testing.T) {
	buf := newTestBuffer(t)

	fm := format.New()
	subject := NewSubject()

	var out bytes.Buffer
	console, err := NewConsole(fm, &out)
	assert.NilError(t, err)
	assert.NilError(t, subject.Attach(console))

	c, err := NewConsumer(buf, filter.New(3), ConsumerCallbacks{}, subject, nil, 20, "worker")
	assert.NilError(t, err)

	sender := uint32(20)
	ch, err := NewChain(func() uint32 { return sender })
	assert.NilError(t, err)
	assert.NilError(t, ch.Append(c))

	dispatches := 0
	em, err := emitter.New(buf, filter.New(5), emitter.Callbacks{
		Emit: func() {
			dispatches++
			ch.Dispatch()
		},
	})
	assert.NilError(t, err)

	// dropped on the emitter side: no signal at all
	assert.NilError(t, em.Log(6, "never sent"))
	assert.Equal(t, dispatches, 0)

	// passes the emitter, dropped by the server filter
	assert.NilError(t, em.Log(5, "server dropped"))
	assert.Equal(t, dispatches, 1)
	assert.Equal(t, out.Len(), 0)

	// passes both; the consumer construction published threshold 3 as the
	// record's server level
	assert.NilError(t, em.Log(2, "through"))
	want := "000020 worker         01.01.1970-00:00:00   3   2 through\n"
	assert.Equal(t, out.String(), want)
}
