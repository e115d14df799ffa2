// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// consumerByFilename finds the consumer owning the named log file, or nil.
func (ch *Chain) consumerByFilename(filename string) *Consumer {
	for c := ch.first; c != nil; c = c.Next() {
		if c.file == nil {
			continue
		}
		if c.file.filename == filename {
			return c
		}
	}

	return nil
}

// ReadLogFile serves a bounded read of a log file to the requesting client.
// The chunk lands in the requester's own shared page, so no other client's
// memory is ever exposed. Returns the bytes delivered and the current file
// size. On any error n is -1. Validation failures (unknown sender, missing
// file, offset beyond the size, overflow) leave the page untouched; a failed
// read or close can leave part of a chunk in it.
//
// The offset+length overflow check matters because the sum travels across
// the transport as two u64 values.
func (ch *Chain) ReadLogFile(filename string, offset, length uint64) (n int64, size int64, err error) {
	if filename == "" {
		return -1, -1, logerr.ErrInvalidParameter
	}

	sender := ch.GetSender()
	if sender == nil {
		return -1, -1, errors.Wrap(logerr.ErrInvalidHandle, "unknown sender")
	}

	target := ch.consumerByFilename(filename)
	if target == nil {
		return -1, -1, errors.Wrapf(logerr.ErrInvalidParameter, "no log file %v", filename)
	}

	lf := target.file

	size, err = lf.fs.Size(filename)
	if err != nil {
		return -1, -1, errors.Wrapf(err, "size %v", filename)
	}
	lf.length = uint64(size)

	if offset > uint64(size) {
		return -1, size, errors.Wrapf(logerr.ErrInvalidParameter,
			"offset %v beyond size %v of %v", offset, size, filename)
	}
	if length > math.MaxInt64-offset {
		return -1, size, errors.Wrap(logerr.ErrInvalidParameter, "offset+length overflow")
	}

	if uint64(size) <= offset+length {
		length = uint64(size) - offset
	}

	page := sender.buf.Page()
	if length > uint64(len(page)) {
		length = uint64(len(page))
	}

	f, err := lf.fs.Open(filename, ModeRead)
	if err != nil {
		return -1, size, errors.Wrapf(err, "open %v", filename)
	}

	read, err := f.ReadAt(page[:length], int64(offset))
	cerr := f.Close()

	if err != nil && err != io.EOF {
		return -1, size, errors.Wrapf(err, "read %v at %v", filename, offset)
	}
	if cerr != nil {
		return -1, size, errors.Wrapf(cerr, "close %v", filename)
	}

	return int64(read), size, nil
}
