// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package databuffer implements the fixed-layout record exchanged between an
// emitter and its consumer over a single shared page. The layout is:
//
//	offset 0: server level, LogLevelLength ASCII digits, right-justified
//	offset 3: client level, same encoding
//	offset 6: message, NUL-terminated when shorter than the region
//
// Fixed offsets let the two sides agree on the layout without a schema
// channel; width-padded decimals keep the page printable for low-level debug.
package databuffer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Buffer wraps one shared page. The emitter owns the write side; the consumer
// owns the read/clear side. At most one record is in flight at any time.
type Buffer struct {
	page []byte
}

// Info is the in-memory form of a record read back from a page. Message
// aliases a scratch buffer owned by the Info so that repeated reads do not
// allocate.
type Info struct {
	ServerLevel uint8
	ClientLevel uint8
	Message     []byte

	scratch []byte
}

// New wraps a caller-allocated page. The page must be large enough to hold
// the two level fields and at least one message byte, and no larger than
// DataBufferSize.
func New(page []byte) (*Buffer, error) {
	if page == nil {
		return nil, logerr.ErrInvalidParameter
	}
	if len(page) <= logdefs.MessageOffset || len(page) > logdefs.DataBufferSize {
		return nil, logerr.ErrInvalidParameter
	}

	return &Buffer{page: page}, nil
}

// NewInfo allocates a record slot sized for a full page. Callers allocate one
// per consumer at construction time and reuse it for every record.
func NewInfo() *Info {
	return &Info{scratch: make([]byte, logdefs.MessageLength)}
}

// Page exposes the raw page, for transports that hand it to the other side.
func (b *Buffer) Page() []byte {
	return b.page
}

// MessageLen returns the capacity of the message region.
func (b *Buffer) MessageLen() int {
	return len(b.page) - logdefs.MessageOffset
}

func (b *Buffer) setLevel(offset int, level uint8) error {
	if b == nil {
		return logerr.ErrInvalidParameter
	}

	field := fmt.Sprintf("%*d", logdefs.LogLevelLength, level)
	if len(field) != logdefs.LogLevelLength {
		return logerr.ErrGeneric
	}

	copy(b.page[offset:offset+logdefs.LogLevelLength], field)
	return nil
}

func (b *Buffer) SetServerLevel(level uint8) error {
	return b.setLevel(logdefs.ServerLevelOffset, level)
}

func (b *Buffer) SetClientLevel(level uint8) error {
	return b.setLevel(logdefs.ClientLevelOffset, level)
}

// SetMessage writes msg into the message region. The region stays
// NUL-terminated when msg is shorter than the region; a message that does not
// fit is rejected without a partial write.
func (b *Buffer) SetMessage(msg []byte) error {
	if b == nil || msg == nil {
		return logerr.ErrInvalidParameter
	}

	region := b.page[logdefs.MessageOffset:]
	if len(msg) > len(region) {
		return logerr.ErrBufferTooSmall
	}

	n := copy(region, msg)
	if n < len(region) {
		region[n] = 0
	}

	return nil
}

func (b *Buffer) getLevel(offset int, out *uint8) error {
	if b == nil || out == nil {
		return logerr.ErrInvalidParameter
	}

	field := string(b.page[offset : offset+logdefs.LogLevelLength])
	field = strings.Trim(field, " \x00")

	if field == "" {
		*out = 0
		return nil
	}

	v, err := strconv.Atoi(field)
	if err != nil || v < 0 || v > 255 {
		return logerr.ErrGeneric
	}

	*out = uint8(v)
	return nil
}

func (b *Buffer) GetServerLevel(info *Info) error {
	if info == nil {
		return logerr.ErrInvalidParameter
	}
	return b.getLevel(logdefs.ServerLevelOffset, &info.ServerLevel)
}

func (b *Buffer) GetClientLevel(info *Info) error {
	if info == nil {
		return logerr.ErrInvalidParameter
	}
	return b.getLevel(logdefs.ClientLevelOffset, &info.ClientLevel)
}

// GetMessage copies the message region, up to the first NUL, into the Info's
// scratch buffer.
func (b *Buffer) GetMessage(info *Info) error {
	if b == nil || info == nil {
		return logerr.ErrInvalidParameter
	}

	region := b.page[logdefs.MessageOffset:]

	n := len(region)
	for i, c := range region {
		if c == 0 {
			n = i
			break
		}
	}

	copy(info.scratch, region[:n])
	info.Message = info.scratch[:n]

	return nil
}

// GetInfo reads all record fields into info.
func (b *Buffer) GetInfo(info *Info) error {
	if err := b.GetServerLevel(info); err != nil {
		return err
	}
	if err := b.GetClientLevel(info); err != nil {
		return err
	}
	return b.GetMessage(info)
}

// Clear zeroes the client level and message regions, releasing the page back
// to the emitter. The server-level prefix is preserved so the emitter can
// observe the server's filter threshold between records.
func (b *Buffer) Clear() error {
	if b == nil {
		return logerr.ErrInvalidParameter
	}

	region := b.page[logdefs.ClientLevelOffset:]
	for i := range region {
		region[i] = 0
	}

	return nil
}
