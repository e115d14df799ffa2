// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package format renders a collected record as a single text line:
//
//	<id:6> <name:14> dd.mm.yyyy-HH:MM:SS <srv:3> <cli:3> <message>\n
//
// The id and name are independently padded fields, each followed by its own
// separator, the level fields are right-justified to LogLevelLength, and the
// message is truncated rather than wrapped.
package format

import (
	"fmt"
	"io"

	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"
)

// Entry is one record, ready for rendering.
type Entry struct {
	ID          uint32
	Name        string
	Stamp       timestamp.Timestamp
	ServerLevel uint8
	ClientLevel uint8
	Message     []byte
}

// Formatter converts entries into its reusable scratch buffer. A formatter is
// not safe for concurrent use; the server hot path is single-threaded so one
// shared instance serves all sinks.
type Formatter struct {
	buf []byte
}

func New() *Formatter {
	size := logdefs.IDLength + logdefs.NameLength + logdefs.TimestampLength +
		2*logdefs.LogLevelLength + logdefs.MessageLength + 8

	return &Formatter{buf: make([]byte, 0, size)}
}

// Convert renders e into the scratch buffer, replacing the previous line.
func (f *Formatter) Convert(e *Entry) error {
	if f == nil || e == nil {
		return logerr.ErrInvalidParameter
	}

	tm, err := e.Stamp.Time(0)
	if err != nil {
		return err
	}

	msg := e.Message
	if len(msg) > logdefs.MessageLength {
		msg = msg[:logdefs.MessageLength]
	}

	f.buf = f.buf[:0]
	f.buf = fmt.Appendf(f.buf, "%0*d %-*.*s %02d.%02d.%04d-%02d:%02d:%02d %*d %*d %s\n",
		logdefs.IDLength, e.ID,
		logdefs.NameLength, logdefs.NameLength, e.Name,
		tm.Day, tm.Month, tm.Year, tm.Hour, tm.Min, tm.Sec,
		logdefs.LogLevelLength, e.ServerLevel,
		logdefs.LogLevelLength, e.ClientLevel,
		msg)

	return nil
}

// Bytes returns the most recently converted line. The slice is only valid
// until the next Convert.
func (f *Formatter) Bytes() []byte {
	return f.buf
}

// Print writes the most recently converted line to w.
func (f *Formatter) Print(w io.Writer) error {
	if f == nil || w == nil {
		return logerr.ErrInvalidParameter
	}

	_, err := w.Write(f.buf)
	return err
}
