// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"testing"

	"github.com/sandia-minimega/minilogd/pkg/databuffer"
	"github.com/sandia-minimega/minilogd/pkg/filter"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"

	"gotest.tools/v3/assert"
)

// mockObserver records every notification it receives and can be told to
// fail.
type mockObserver struct {
	node intrusive.Node

	name string
	fail error

	msgs  []string
	order *[]string // shared across observers to record relative order
}

func newMockObserver(name string, order *[]string) *mockObserver {
	o := &mockObserver{name: name, order: order}
	o.node.SetOwner(o)
	return o
}

func (o *mockObserver) Node() *intrusive.Node {
	return &o.node
}

func (o *mockObserver) Update(c *Consumer) error {
	if o.order != nil {
		*o.order = append(*o.order, o.name)
	}
	o.msgs = append(o.msgs, string(c.Entry().Message))
	return o.fail
}

func newTestBuffer(t *testing.T) *databuffer.Buffer {
	t.Helper()

	buf, err := databuffer.New(make([]byte, logdefs.DataBufferSize))
	assert.NilError(t, err)
	return buf
}

// newTestConsumer builds a consumer with a fixed clock and no log file.
func newTestConsumer(t *testing.T, subject *Subject, f *filter.Filter, id uint32, name string) (*Consumer, *databuffer.Buffer) {
	t.Helper()

	buf := newTestBuffer(t)

	c, err := NewConsumer(buf, f, ConsumerCallbacks{
		GetTimestamp: func() timestamp.Timestamp { return testStamp },
	}, subject, nil, id, name)
	assert.NilError(t, err)

	return c, buf
}

// writeRecord plants a record in the page the way an emitter would.
func writeRecord(t *testing.T, buf *databuffer.Buffer, level uint8, msg string) {
	t.Helper()

	assert.NilError(t, buf.SetClientLevel(level))
	assert.NilError(t, buf.SetMessage([]byte(msg)))
}

var testStamp = timestamp.FromTime(timestamp.Time{
	Year: 2026, Month: 8, Day: 1, Hour: 17, Min: 2, Sec: 3,
})
