// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"github.com/sandia-minimega/minilogd/pkg/databuffer"
	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/filter"
	"github.com/sandia-minimega/minilogd/pkg/format"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"
)

// ConsumerCallbacks couples a consumer to its transport and clock. Both are
// optional: without GetTimestamp records are stamped zero, without ServerEmit
// no acknowledgement is raised back to the client.
type ConsumerCallbacks struct {
	GetTimestamp func() timestamp.Timestamp
	ServerEmit   func()
}

// Consumer collects records from one client's shared page. Consumers are
// constructed at server init for each known client and live for the server's
// lifetime.
type Consumer struct {
	node intrusive.Node

	buf     *databuffer.Buffer
	id      uint32
	name    string
	filter  *filter.Filter
	subject *Subject
	file    *LogFile
	cb      ConsumerCallbacks

	info  *databuffer.Info
	entry format.Entry
}

// NewConsumer wires a consumer to the server's view of the client page. The
// filter and log file may be nil. Construction clears the page and publishes
// the server filter threshold into the page's server-level prefix so the
// client side can observe it.
func NewConsumer(buf *databuffer.Buffer, f *filter.Filter, cb ConsumerCallbacks,
	subject *Subject, file *LogFile, id uint32, name string) (*Consumer, error) {

	if buf == nil || subject == nil {
		return nil, logerr.ErrInvalidParameter
	}

	// the consumer name is bounded: name plus NUL fit in NameLength
	if len(name) >= logdefs.NameLength {
		name = name[:logdefs.NameLength-1]
	}

	c := &Consumer{
		buf:     buf,
		id:      id,
		name:    name,
		filter:  f,
		subject: subject,
		file:    file,
		cb:      cb,
		info:    databuffer.NewInfo(),
	}
	c.node.SetOwner(c)

	c.entry.ID = id
	c.entry.Name = name

	buf.Clear()
	if f != nil {
		buf.SetServerLevel(f.Level)
	}

	return c, nil
}

func (c *Consumer) ID() uint32 {
	return c.id
}

// Entry returns the consumer's record slot: the most recently collected
// record, ready for rendering.
func (c *Consumer) Entry() *format.Entry {
	return &c.entry
}

// File returns the consumer's log file, or nil if none is attached.
func (c *Consumer) File() *LogFile {
	return c.file
}

// Buffer returns the server's view of the client page.
func (c *Consumer) Buffer() *databuffer.Buffer {
	return c.buf
}

// Next returns the consumer after c in its chain.
func (c *Consumer) Next() *Consumer {
	n := c.node.Next()
	if n == nil {
		return nil
	}
	return n.Owner().(*Consumer)
}

// Process drains one record from the page: admission by the server-side
// filter, copy into the record slot, release of the page, timestamping, and
// fan-out through the subject. A filtered record is consumed and cleared
// silently.
func (c *Consumer) Process() {
	if err := c.buf.GetClientLevel(c.info); err != nil {
		dlog.Error("consumer %v: bad client level: %v", c.id, err)
		c.buf.Clear()
		return
	}

	if c.filter.FilteredOut(c.info.ClientLevel) {
		dlog.Debug("consumer %v: dropped record at level %v", c.id, c.info.ClientLevel)
		c.buf.Clear()
		return
	}

	if err := c.buf.GetInfo(c.info); err != nil {
		dlog.Error("consumer %v: bad record: %v", c.id, err)
		c.buf.Clear()
		return
	}

	c.buf.Clear()

	c.entry.ServerLevel = c.info.ServerLevel
	c.entry.ClientLevel = c.info.ClientLevel
	c.entry.Message = c.info.Message
	c.entry.Stamp = c.getTimestamp()

	c.subject.Notify(c)
}

// Emit raises the server-side acknowledgement back to the client, if one is
// configured.
func (c *Consumer) Emit() {
	if c.cb.ServerEmit != nil {
		c.cb.ServerEmit()
	}
}

func (c *Consumer) getTimestamp() timestamp.Timestamp {
	if c.cb.GetTimestamp != nil {
		return c.cb.GetTimestamp()
	}
	return 0
}
