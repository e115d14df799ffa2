// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package emitter implements the client side of the record exchange. An
// emitter renders a message into its shared page and then raises the emit
// signal, in that order, so the server never observes the signal before the
// field writes. Log is not re-entrant; the caller serialises calls on one
// emitter.
package emitter

import (
	"fmt"

	"github.com/sandia-minimega/minilogd/pkg/databuffer"
	"github.com/sandia-minimega/minilogd/pkg/filter"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Callbacks couples an emitter to its transport. Emit raises the server
// event and is required. Wait, when set, blocks until the server has released
// the page from the previous record; transports that serialise calls leave it
// nil.
type Callbacks struct {
	Wait func()
	Emit func()
}

// Emitter publishes log records into one shared page. Allocate one per
// client component; the buffer and callbacks are frozen at construction, the
// filter may be replaced at any time between Log calls.
type Emitter struct {
	buf     *databuffer.Buffer
	filter  *filter.Filter
	cb      Callbacks
	scratch []byte
}

func New(buf *databuffer.Buffer, f *filter.Filter, cb Callbacks) (*Emitter, error) {
	if buf == nil || cb.Emit == nil {
		return nil, logerr.ErrInvalidParameter
	}

	return &Emitter{
		buf:     buf,
		filter:  f,
		cb:      cb,
		scratch: make([]byte, 0, buf.MessageLen()),
	}, nil
}

// SetFilter replaces the emitter-side filter. A nil filter admits everything.
func (e *Emitter) SetFilter(f *filter.Filter) {
	e.filter = f
}

// Log renders format and args and publishes the record at the given level.
// Records dropped by the emitter-side filter return nil without touching the
// page or signalling. An over-length rendering is rejected before any write.
func (e *Emitter) Log(level uint8, format string, args ...interface{}) error {
	if e == nil {
		return logerr.ErrInvalidHandle
	}
	if format == "" {
		return logerr.ErrInvalidParameter
	}

	if e.cb.Wait != nil {
		e.cb.Wait()
	}

	if e.filter.FilteredOut(level) {
		return nil
	}

	msg := fmt.Appendf(e.scratch[:0], format, args...)
	if len(msg) >= e.buf.MessageLen() {
		return logerr.ErrBufferTooSmall
	}

	if err := e.buf.SetClientLevel(level); err != nil {
		return err
	}
	if err := e.buf.SetMessage(msg); err != nil {
		return err
	}

	e.cb.Emit()

	return nil
}
