// Package logging builds the structured loggers shared by the commands.
package logging

import (
	"io"

	"github.com/pterm/pterm"
)

// Options configures a logger.
type Options struct {
	Writer  io.Writer
	Verbose bool
	JSON    bool
}

// New returns a pterm logger writing to opts.Writer. Verbose enables debug
// output; JSON switches to one JSON object per line.
func New(opts Options) *pterm.Logger {
	l := pterm.DefaultLogger.WithTime(false)
	if opts.Writer != nil {
		l = l.WithWriter(opts.Writer)
	}
	if opts.Verbose {
		l = l.WithLevel(pterm.LogLevelDebug)
	} else {
		l = l.WithLevel(pterm.LogLevelWarn)
	}
	if opts.JSON {
		l = l.WithFormatter(pterm.LogFormatterJSON)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *pterm.Logger) *pterm.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
