// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// dlog is the internal diagnostics channel for minilogd itself, kept separate
// from the records the daemon routes for its clients. Call AddLogger() to set
// up each desired sink, then use the package-level logging functions to send
// messages to all of them.
package dlog

import (
	"flag"
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh/terminal"
)

var (
	f_level   = flag.String("level", "warn", "set log level: [debug, info, warn, error, fatal]")
	f_verbose = flag.Bool("v", true, "log on stderr")
	f_logfile = flag.String("logfile", "", "also log to file")
)

// Level orders diagnostics from most to least verbose.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// levelNames drives both parsing and printing of levels.
var levelNames = []string{"debug", "info", "warn", "error", "fatal"}

// ParseLevel returns the log level from a string, as given on the command
// line.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return -1, fmt.Errorf("invalid log level: %v", s)
}

func (l Level) String() string {
	if l < DEBUG || l > FATAL {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

var (
	sinks    = make(map[string]*sink)
	sinkLock sync.RWMutex
)

// sink is one named output with its own level, color setting, and substring
// filters.
type sink struct {
	*golog.Logger // embed

	level   Level
	color   bool
	filters []string
}

// AddLogger adds a sink that logs events at the specified level or higher to
// output.
func AddLogger(name string, output io.Writer, level Level, color bool) {
	sinkLock.Lock()
	defer sinkLock.Unlock()

	sinks[name] = &sink{golog.New(output, "", golog.LstdFlags), level, color, nil}
}

// DelLogger removes a named sink added with AddLogger.
func DelLogger(name string) {
	sinkLock.Lock()
	defer sinkLock.Unlock()

	delete(sinks, name)
}

// SetLevel changes the level of a named sink.
func SetLevel(name string, level Level) error {
	sinkLock.Lock()
	defer sinkLock.Unlock()

	if sinks[name] == nil {
		return fmt.Errorf("no such logger %v", name)
	}
	sinks[name].level = level
	return nil
}

// WillLog returns true if logging at level would reach any sink. Useful when
// the message itself is expensive to produce.
func WillLog(level Level) bool {
	sinkLock.RLock()
	defer sinkLock.RUnlock()

	for _, s := range sinks {
		if s.level <= level {
			return true
		}
	}
	return false
}

// AddFilter drops any message containing filter on the named sink.
func AddFilter(name, filter string) error {
	sinkLock.Lock()
	defer sinkLock.Unlock()

	s, ok := sinks[name]
	if !ok {
		return fmt.Errorf("no such logger %v", name)
	}

	for _, f := range s.filters {
		if f == filter {
			return nil
		}
	}
	s.filters = append(s.filters, filter)
	return nil
}

// DelFilter removes a filter added with AddFilter.
func DelFilter(name, filter string) error {
	sinkLock.Lock()
	defer sinkLock.Unlock()

	s, ok := sinks[name]
	if !ok {
		return fmt.Errorf("no such logger %v", name)
	}

	for i, f := range s.filters {
		if f == filter {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("filter %v does not exist", filter)
}

// Init sets up sinks according to the package flags. Color is enabled on the
// stderr sink only when stderr is a terminal.
func Init() {
	level, err := ParseLevel(*f_level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *f_verbose {
		color := runtime.GOOS != "windows" &&
			terminal.IsTerminal(int(os.Stderr.Fd()))
		AddLogger("stdio", os.Stderr, level, color)
	}

	if *f_logfile != "" {
		if err := os.MkdirAll(filepath.Dir(*f_logfile), 0755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logfile, err := os.OpenFile(*f_logfile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0660)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		AddLogger("file", logfile, level, false)
	}
}

func (s *sink) prologue(level Level) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(level.String()))
	b.WriteString(" ")

	_, file, line, _ := runtime.Caller(4)
	b.WriteString(filepath.Base(file))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(line))
	b.WriteString(": ")

	if s.color {
		return FgYellow + b.String() + levelColor(level)
	}
	return b.String()
}

func (s *sink) output(level Level, msg string) {
	line := s.prologue(level) + msg
	if s.color {
		line += Reset
	}

	for _, f := range s.filters {
		if strings.Contains(line, f) {
			return
		}
	}

	s.Println(line)
}

func log(level Level, format string, args ...interface{}) {
	sinkLock.RLock()
	defer sinkLock.RUnlock()

	for _, s := range sinks {
		if s.level <= level {
			s.output(level, fmt.Sprintf(format, args...))
		}
	}
}

func logln(level Level, args ...interface{}) {
	sinkLock.RLock()
	defer sinkLock.RUnlock()

	for _, s := range sinks {
		if s.level <= level {
			s.output(level, fmt.Sprint(args...))
		}
	}
}

func Debug(format string, args ...interface{}) {
	log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	log(FATAL, format, args...)

	os.Exit(1)
}

func Debugln(args ...interface{}) {
	logln(DEBUG, args...)
}

func Infoln(args ...interface{}) {
	logln(INFO, args...)
}

func Warnln(args ...interface{}) {
	logln(WARN, args...)
}

func Errorln(args ...interface{}) {
	logln(ERROR, args...)
}

func Fatalln(args ...interface{}) {
	logln(FATAL, args...)

	os.Exit(1)
}
