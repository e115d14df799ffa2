// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/logerr"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"
)

func TestConvert(t *testing.T) {
	f := New()

	e := &Entry{
		ID:          42,
		Name:        "main",
		Stamp:       timestamp.FromTime(timestamp.Time{Year: 2026, Month: 8, Day: 1, Hour: 17, Min: 2, Sec: 3}),
		ServerLevel: 0,
		ClientLevel: 5,
		Message:     []byte("hello 7"),
	}

	if err := f.Convert(e); err != nil {
		t.Fatal(err)
	}

	want := "000042 main           01.08.2026-17:02:03   0   5 hello 7\n"
	if got := string(f.Bytes()); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestConvertReuse(t *testing.T) {
	f := New()

	e := &Entry{ID: 1, Name: "a", Message: []byte("first")}
	if err := f.Convert(e); err != nil {
		t.Fatal(err)
	}

	e.Message = []byte("two")
	if err := f.Convert(e); err != nil {
		t.Fatal(err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "first") {
		t.Fatalf("stale scratch content: %q", got)
	}
	if !strings.HasSuffix(got, " two\n") {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestConvertClampsMessage(t *testing.T) {
	f := New()

	e := &Entry{
		ID:      1,
		Name:    "a",
		Message: bytes.Repeat([]byte("z"), logdefs.MessageLength+100),
	}

	if err := f.Convert(e); err != nil {
		t.Fatal(err)
	}

	// id and name fields with their separators + timestamp + two level
	// fields + clamped message + newline
	want := logdefs.IDLength + 1 + logdefs.NameLength + 1 + 19 + 1 + 3 + 1 + 3 + 1 + logdefs.MessageLength + 1
	if got := len(f.Bytes()); got != want {
		t.Fatalf("line length %v, want %v", got, want)
	}
}

func TestConvertInvalid(t *testing.T) {
	f := New()

	if err := f.Convert(nil); err != logerr.ErrInvalidParameter {
		t.Fatalf("nil entry: got %v", err)
	}
}

func TestPrint(t *testing.T) {
	f := New()

	if err := f.Convert(&Entry{ID: 1, Name: "a", Message: []byte("x")}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := f.Print(&out); err != nil {
		t.Fatal(err)
	}

	if out.String() != string(f.Bytes()) {
		t.Fatal("print did not write the converted line")
	}

	if err := f.Print(nil); err != logerr.ErrInvalidParameter {
		t.Fatalf("nil writer: got %v", err)
	}
}
