// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"io"
	"os"
	"path/filepath"
)

// OpenMode selects how the file backend opens a log file.
type OpenMode int

const (
	// ModeRead opens an existing file read-only.
	ModeRead OpenMode = iota
	// ModeWrite opens an existing file for positional writes.
	ModeWrite
	// ModeCreate creates the file, truncating any previous contents.
	ModeCreate
)

// File is one open log file on the backend.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// Filesystem is the host filesystem surface the file backend requires. The
// real driver lives in another component; OSFS adapts a host directory for
// the daemon and the tests.
type Filesystem interface {
	Open(name string, mode OpenMode) (File, error)
	Size(name string) (int64, error)
}

// OSFS serves a Filesystem rooted at a single directory.
type OSFS struct {
	dir string
}

func NewOSFS(dir string) (*OSFS, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &OSFS{dir: dir}, nil
}

func (fs *OSFS) Open(name string, mode OpenMode) (File, error) {
	path := filepath.Join(fs.dir, name)

	switch mode {
	case ModeWrite:
		return os.OpenFile(path, os.O_WRONLY, 0644)
	case ModeCreate:
		return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	default:
		return os.Open(path)
	}
}

func (fs *OSFS) Size(name string) (int64, error) {
	fi, err := os.Stat(filepath.Join(fs.dir, name))
	if err != nil {
		return -1, err
	}

	return fi.Size(), nil
}
