package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// Tool creates a logger for command line tools: no timestamps, and the level
// of the global logger at the time of the call.
func Tool(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:    prefix,
		Level:     log.GetLevel(),
		Formatter: log.TextFormatter,
	})
}

// Banner creates a logger that prints at info level whatever the global
// level is. styles may be nil.
func Banner(w io.Writer, styles *log.Styles) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Level: log.InfoLevel, Formatter: log.TextFormatter})
	if styles != nil {
		l.SetStyles(styles)
	}
	return l
}
