// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package fileclient pulls bounded chunks of a server-side log file into a
// destination buffer. Each iteration makes one synchronous call against the
// server's read interface; the server lands every chunk in the caller's own
// shared page, so the source buffer here is that page.
package fileclient

import (
	"github.com/pkg/errors"

	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// ReadFunc is the server's bounded read. It returns the number of bytes
// delivered into the caller's page and the current file size.
type ReadFunc func(filename string, offset, length uint64) (n int64, size int64, err error)

// Client copies chunks from src (the shared page the server fills) into dest.
type Client struct {
	src  []byte
	dest []byte
	read ReadFunc
}

func New(src, dest []byte, read ReadFunc) (*Client, error) {
	if src == nil || dest == nil || read == nil {
		return nil, logerr.ErrInvalidParameter
	}

	return &Client{src: src, dest: dest, read: read}, nil
}

// Read pulls the file in chunks of at most length bytes starting at offset,
// stopping when the server reports no more data or the reported file size is
// reached. dest must be large enough for the region being read.
func (c *Client) Read(filename string, offset, length uint64) error {
	if c == nil {
		return logerr.ErrInvalidHandle
	}
	if filename == "" {
		return logerr.ErrInvalidParameter
	}

	for {
		n, size, err := c.read(filename, offset, length)
		if err != nil {
			return errors.Wrapf(err, "read %v at %v", filename, offset)
		}
		if n <= 0 {
			break
		}

		if offset+uint64(n) > uint64(len(c.dest)) {
			return logerr.ErrBufferTooSmall
		}

		copy(c.dest[offset:offset+uint64(n)], c.src[:n])
		offset += uint64(n)

		if offset >= uint64(size) {
			break
		}
	}

	return nil
}
