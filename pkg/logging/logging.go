// Package logging builds the service's structured logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w (stderr when nil). Unknown levels fall
// back to info; any format other than console is written as JSON lines.
func New(level, format string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if level == "" {
		lvl = log.InfoLevel
	}

	l := &log.Logger{
		Level:      lvl,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if format == FormatConsole {
		l.Writer = &log.ConsoleWriter{Writer: w, ColorOutput: false, QuoteString: true}
	} else {
		l.Writer = &log.IOWriter{Writer: w}
	}
	return l
}

// Component returns a child logger that tags every entry with component=name.
func Component(parent *log.Logger, name string) *log.Logger {
	child := *parent
	child.Context = log.NewContext(append([]byte(nil), parent.Context...)).Str("component", name).Value()
	return &child
}

// Nop discards everything; handy for tests and CLI commands.
func Nop() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}
