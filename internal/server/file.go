// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"github.com/pkg/errors"

	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/format"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// LogFile is one consumer's append-only log file: the backend handle, the
// bounded filename, and the append offset. offset never exceeds length, and
// length matches filesystem truth after every successful write.
type LogFile struct {
	fs       Filesystem
	filename string
	offset   uint64
	length   uint64
}

// NewLogFile binds a filename on the backend. The name is bounded by
// IDAndNameLength including the terminator.
func NewLogFile(fs Filesystem, filename string) (*LogFile, error) {
	if fs == nil || filename == "" ||
		len(filename) >= logdefs.IDAndNameLength {
		return nil, logerr.ErrInvalidParameter
	}

	return &LogFile{fs: fs, filename: filename}, nil
}

// Create makes the file exist empty on the backend and resets the append
// offset. The file exists from the moment Create returns until the server
// stops.
func (lf *LogFile) Create() error {
	f, err := lf.fs.Open(lf.filename, ModeCreate)
	if err != nil {
		dlog.Error("create %v: %v", lf.filename, err)
		return errors.Wrapf(logerr.ErrInvalidHandle, "create %v", lf.filename)
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %v", lf.filename)
	}

	lf.offset = 0
	lf.length = 0

	return nil
}

func (lf *LogFile) Filename() string {
	return lf.filename
}

// Offset returns the current append offset.
func (lf *LogFile) Offset() uint64 {
	return lf.offset
}

// Length returns the file length as of the last write or read.
func (lf *LogFile) Length() uint64 {
	return lf.length
}

// FileOutput is the append observer. Each update opens the consumer's log
// file, writes the rendered line at the append offset, and closes it again.
// The offset advances only on success, so a retry of the same record writes
// the same bytes at the same offset.
type FileOutput struct {
	node intrusive.Node

	format *format.Formatter
}

func (o *FileOutput) Node() *intrusive.Node {
	return &o.node
}

func NewFileOutput(f *format.Formatter) (*FileOutput, error) {
	if f == nil {
		return nil, logerr.ErrInvalidParameter
	}

	o := &FileOutput{format: f}
	o.node.SetOwner(o)

	return o, nil
}

func (o *FileOutput) Update(c *Consumer) error {
	if c == nil {
		return logerr.ErrInvalidParameter
	}

	lf := c.File()
	if lf == nil {
		return logerr.ErrInvalidParameter
	}

	if err := o.format.Convert(c.Entry()); err != nil {
		return err
	}
	line := o.format.Bytes()

	f, err := lf.fs.Open(lf.filename, ModeWrite)
	if err != nil {
		return errors.Wrapf(err, "open %v", lf.filename)
	}

	n, werr := f.WriteAt(line, int64(lf.offset))
	cerr := f.Close()

	if werr != nil {
		return errors.Wrapf(werr, "write %v at %v", lf.filename, lf.offset)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "close %v", lf.filename)
	}

	lf.offset += uint64(n)
	lf.length = lf.offset

	return nil
}
