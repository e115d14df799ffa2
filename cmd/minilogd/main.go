// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// minilogd runs the log server with an in-process transport: demo emitter
// components publish records through shared pages and a channel stands in for
// the RPC event frame. An interactive console drives the file read path the
// way an external file client would.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"

	"github.com/sandia-minimega/minilogd/internal/server"
	"github.com/sandia-minimega/minilogd/pkg/databuffer"
	"github.com/sandia-minimega/minilogd/pkg/dlog"
	"github.com/sandia-minimega/minilogd/pkg/emitter"
	"github.com/sandia-minimega/minilogd/pkg/fileclient"
	"github.com/sandia-minimega/minilogd/pkg/filter"
	"github.com/sandia-minimega/minilogd/pkg/format"
	"github.com/sandia-minimega/minilogd/pkg/logdefs"
	"github.com/sandia-minimega/minilogd/pkg/timestamp"
)

const BANNER = `minilogd, Copyright 2026 National Technology & Engineering Solutions
of Sandia, LLC (NTESS). Under the terms of Contract DE-NA0003525 with NTESS,
the U.S. Government retains certain rights in this software.`

// Set at link time with -ldflags "-X main.buildDate=... -X main.buildTime=...".
var (
	buildDate = "Jan  1 2026"
	buildTime = "00:00:00"
)

var (
	f_dir   = flag.String("dir", "/tmp/minilogd", "directory for log files")
	f_count = flag.Int("count", 5, "records each demo client emits at startup")
)

// READER_ID is the sender id the interactive console uses on the file read
// path; reads land in this client's page.
const READER_ID = 1

// transport is the in-process stand-in for the RPC frame: client emits
// become events on a channel, the server loop records the sender id before
// dispatching, and per-client ack tokens provide the client-side wait.
type transport struct {
	// mu serialises dispatch and file reads, which the real frame does by
	// construction
	mu sync.Mutex

	events  chan uint32
	current uint32
	acks    map[uint32]chan struct{}
}

func newTransport() *transport {
	return &transport{
		events: make(chan uint32, 64),
		acks:   make(map[uint32]chan struct{}),
	}
}

// register creates the ack token for one client, pre-seeded so the first
// emit does not wait.
func (t *transport) register(id uint32) {
	ack := make(chan struct{}, 1)
	ack <- struct{}{}
	t.acks[id] = ack
}

func (t *transport) callbacks(id uint32) emitter.Callbacks {
	return emitter.Callbacks{
		Wait: func() { <-t.acks[id] },
		Emit: func() { t.events <- id },
	}
}

// serve runs the server wake-up loop until the event channel closes.
func (t *transport) serve(chain *server.Chain) {
	for id := range t.events {
		t.mu.Lock()
		t.current = id
		chain.Dispatch()
		t.mu.Unlock()
	}
}

// readLogFile performs one bounded read on behalf of the console, posing as
// the reader client.
func (t *transport) readLogFile(chain *server.Chain) fileclient.ReadFunc {
	return func(filename string, offset, length uint64) (int64, int64, error) {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.current = READER_ID
		return chain.ReadLogFile(filename, offset, length)
	}
}

// client is one demo emitter component.
type client struct {
	id     uint32
	name   string
	server *filter.Filter // server-side threshold
	buf    *databuffer.Buffer
	em     *emitter.Emitter
}

func buildClients(t *transport) []*client {
	specs := []struct {
		id    uint32
		name  string
		level int // server filter threshold, -1 for none
	}{
		{READER_ID, "reader", -1},
		{42, "main", -1},
		{20, "worker", 3},
	}

	var clients []*client

	for _, spec := range specs {
		page := make([]byte, logdefs.DataBufferSize)
		buf, err := databuffer.New(page)
		if err != nil {
			dlog.Fatal("databuffer for %v: %v", spec.name, err)
		}

		t.register(spec.id)

		em, err := emitter.New(buf, nil, t.callbacks(spec.id))
		if err != nil {
			dlog.Fatal("emitter for %v: %v", spec.name, err)
		}

		c := &client{id: spec.id, name: spec.name, buf: buf, em: em}
		if spec.level >= 0 {
			c.server = filter.New(uint8(spec.level))
		}

		clients = append(clients, c)
	}

	return clients
}

func main() {
	flag.Parse()

	dlog.Init()

	ring := dlog.NewRing(64)
	dlog.AddLogger("ring", ring, dlog.DEBUG, false)

	fmt.Println(BANNER)

	fs, err := server.NewOSFS(*f_dir)
	if err != nil {
		dlog.Fatal("log dir %v: %v", *f_dir, err)
	}

	base, err := timestamp.Parse(buildDate, buildTime)
	if err != nil {
		dlog.Fatal("bad build stamp %v %v: %v", buildDate, buildTime, err)
	}
	start := time.Now()
	clock := func() timestamp.Timestamp {
		return base + timestamp.Timestamp(time.Since(start)/time.Second)
	}

	t := newTransport()

	fm := format.New()
	subject := server.NewSubject()

	console, err := server.NewConsole(fm, os.Stdout)
	if err != nil {
		dlog.Fatal("console sink: %v", err)
	}
	if err := subject.Attach(console); err != nil {
		dlog.Fatal("attach console: %v", err)
	}

	fileOut, err := server.NewFileOutput(fm)
	if err != nil {
		dlog.Fatal("file sink: %v", err)
	}
	if err := subject.Attach(fileOut); err != nil {
		dlog.Fatal("attach file sink: %v", err)
	}

	chain, err := server.NewChain(func() uint32 { return t.current })
	if err != nil {
		dlog.Fatal("chain: %v", err)
	}

	clients := buildClients(t)

	for _, c := range clients {
		lf, err := server.NewLogFile(fs, c.name+".log")
		if err != nil {
			dlog.Fatal("log file for %v: %v", c.name, err)
		}
		if err := lf.Create(); err != nil {
			dlog.Fatal("create log file for %v: %v", c.name, err)
		}

		id := c.id
		cons, err := server.NewConsumer(c.buf, c.server,
			server.ConsumerCallbacks{
				GetTimestamp: clock,
				ServerEmit:   func() { t.acks[id] <- struct{}{} },
			},
			subject, lf, c.id, c.name)
		if err != nil {
			dlog.Fatal("consumer for %v: %v", c.name, err)
		}

		if err := chain.Append(cons); err != nil {
			dlog.Fatal("append consumer %v: %v", c.name, err)
		}
	}

	go t.serve(chain)

	demo(clients)

	prompt(t, chain, clients, ring)

	close(t.events)
}

// demo emits a burst of records from every non-reader client.
func demo(clients []*client) {
	var wg sync.WaitGroup

	for _, c := range clients {
		if c.id == READER_ID {
			continue
		}

		wg.Add(1)
		go func(c *client) {
			defer wg.Done()

			for i := 0; i < *f_count; i++ {
				level := uint8(2 + i%5)
				if err := c.em.Log(level, "%v says hello %v", c.name, i); err != nil {
					dlog.Error("%v: log: %v", c.name, err)
				}
			}
		}(c)
	}

	wg.Wait()

	// let the server drain the last records before the prompt draws
	time.Sleep(100 * time.Millisecond)
}

func prompt(t *transport, chain *server.Chain, clients []*client, ring *dlog.Ring) {
	input := liner.NewLiner()
	defer input.Close()

	input.SetCtrlCAborts(true)

	commands := []string{"read ", "log ", "status", "quit"}
	input.SetCompleter(func(line string) (c []string) {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, strings.ToLower(line)) {
				c = append(c, cmd)
			}
		}
		return
	})

	var reader *client
	for _, c := range clients {
		if c.id == READER_ID {
			reader = c
		}
	}

	for {
		line, err := input.Prompt("minilogd> ")
		if err != nil {
			return
		}
		input.AppendHistory(line)

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "status":
			for c := chain.First(); c != nil; c = c.Next() {
				lf := c.File()
				fmt.Printf("consumer %v: %v (%v bytes)\n",
					c.ID(), lf.Filename(), lf.Offset())
			}
			for _, l := range ring.Dump() {
				fmt.Print(l)
			}
		case "read":
			if len(fields) != 2 {
				fmt.Println("usage: read <file>")
				continue
			}
			if err := readFile(t, chain, reader, fields[1]); err != nil {
				fmt.Printf("read %v: %v\n", fields[1], err)
			}
		case "log":
			if len(fields) < 3 {
				fmt.Println("usage: log <id> <level> <message>")
				continue
			}
			if err := logFrom(clients, fields); err != nil {
				fmt.Println(err)
			}
		default:
			fmt.Printf("unknown command: %v\n", fields[0])
		}
	}
}

// readFile pulls the whole named log file into a local buffer through the
// reader client's page and prints it.
func readFile(t *transport, chain *server.Chain, reader *client, name string) error {
	read := t.readLogFile(chain)

	// learn the current size with an empty read
	_, size, err := read(name, 0, 0)
	if err != nil {
		return err
	}

	dest := make([]byte, size)

	fc, err := fileclient.New(reader.buf.Page(), dest, read)
	if err != nil {
		return err
	}

	if err := fc.Read(name, 0, uint64(logdefs.DataBufferSize)); err != nil {
		return err
	}

	os.Stdout.Write(dest)
	return nil
}

// logFrom emits a record from the named client, as in: log 42 5 hello
func logFrom(clients []*client, fields []string) error {
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad id %v", fields[1])
	}
	level, err := strconv.Atoi(fields[2])
	if err != nil || level < 0 || level > 255 {
		return fmt.Errorf("bad level %v", fields[2])
	}

	for _, c := range clients {
		if c.id == uint32(id) {
			return c.em.Log(uint8(level), "%v", strings.Join(fields[3:], " "))
		}
	}

	return fmt.Errorf("no client with id %v", id)
}
