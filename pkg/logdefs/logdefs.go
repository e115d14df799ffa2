// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package logdefs holds the compile-time configuration shared by the log
// client and the log server. The databuffer layout and the line format both
// derive from these constants, so the two sides agree on the wire layout
// without a schema channel.
package logdefs

const (
	// DataBufferSize is the size of the shared page used by one
	// emitter/consumer pair.
	DataBufferSize = 4096

	// LogLevelLength is the width of the two decimal level fields. The
	// fields are right-justified ASCII with leading spaces and carry no NUL.
	LogLevelLength = 3

	ServerLevelOffset = 0
	ClientLevelOffset = LogLevelLength
	MessageOffset     = 2 * LogLevelLength

	// MessageLength is the capacity of the message region on a full-sized
	// page.
	MessageLength = DataBufferSize - 2*LogLevelLength
)

// Widths of the emitter-identity fields in the output line.
const (
	IDAndNameLength = 20
	IDLength        = 6
	NameLength      = IDAndNameLength - IDLength

	TimestampLength = 20
)
