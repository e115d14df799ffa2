// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package logerr defines the error kinds shared by the log client and the log
// server. Callers compare with errors.Is; call sites attach context with
// github.com/pkg/errors.
package logerr

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidHandle    = errors.New("invalid handle")
	ErrBufferTooSmall   = errors.New("buffer too small")
	ErrOperationDenied  = errors.New("operation denied")
	ErrGeneric          = errors.New("general error")
)
