// Package logging builds the structured loggers shared by the binaries.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a stderr logger at the given level. Unknown levels fall back to info.
func New(level, prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, level, prefix)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level, prefix string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
	})
}
