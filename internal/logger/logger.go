// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Setup configures level and format of the shared logger.
// LOG_MODE (quiet|debug) and LOG_FORMAT (json|text) override the flags.
func Setup(debug, jsonLogs, quiet bool) *logrus.Logger {
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		quiet, debug = true, false
	case "debug":
		quiet, debug = false, true
	}
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		jsonLogs = true
	case "text":
		jsonLogs = false
	}

	configure(std, debug, jsonLogs, quiet, isatty.IsTerminal(os.Stderr.Fd()))
	return std
}

func configure(l *logrus.Logger, debug, jsonLogs, quiet, tty bool) {
	switch {
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	case debug:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	if jsonLogs {
		l.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   tty,
		DisableColors: !tty,
	})
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	l := newLogger(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
