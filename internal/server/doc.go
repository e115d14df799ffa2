// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package server implements the consumer side of the logger: one Consumer per
// registered client drains that client's shared page, the Chain demultiplexes
// transport wake-ups onto consumers by sender id, and a Subject fans each
// collected record out to the attached output sinks (console, file).
//
// Everything here is caller-allocated and linked through intrusive nodes; the
// hot path performs no allocation. The chain and all lists are mutated only
// by the transport's single-threaded wake-up handler, so the package uses no
// locks of its own.
package server
