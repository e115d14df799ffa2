// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package server

import (
	"io"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/format"
	"github.com/sandia-minimega/minilogd/pkg/intrusive"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Console is the output-to-stdout observer. Lines are colored by client
// level when the writer is a terminal.
type Console struct {
	node intrusive.Node

	format *format.Formatter
	out    io.Writer
	color  bool
}

func (c *Console) Node() *intrusive.Node {
	return &c.node
}

// NewConsole builds a console sink sharing the server's formatter. A nil
// writer means stdout.
func NewConsole(f *format.Formatter, out io.Writer) (*Console, error) {
	if f == nil {
		return nil, logerr.ErrInvalidParameter
	}

	c := &Console{format: f, out: out}
	if c.out == nil {
		c.out = os.Stdout
	}

	if file, ok := c.out.(*os.File); ok {
		c.color = terminal.IsTerminal(int(file.Fd()))
	}

	c.node.SetOwner(c)

	return c, nil
}

func (c *Console) Update(cons *Consumer) error {
	if cons == nil {
		return logerr.ErrInvalidParameter
	}

	if err := c.format.Convert(cons.Entry()); err != nil {
		return err
	}

	if c.color {
		if _, err := io.WriteString(c.out, levelColor(cons.Entry().ClientLevel)); err != nil {
			return err
		}
		if err := c.format.Print(c.out); err != nil {
			return err
		}
		_, err := io.WriteString(c.out, dlog.Reset)
		return err
	}

	return c.format.Print(c.out)
}

// levelColor maps the record level ranges to the diagnostic colors: fatal
// and error low, then warning, info, and the verbose levels.
func levelColor(level uint8) string {
	switch {
	case level <= 3:
		return dlog.FgRed
	case level == 4:
		return dlog.FgYellow
	case level == 5:
		return dlog.FgGreen
	default:
		return dlog.FgBlue
	}
}
