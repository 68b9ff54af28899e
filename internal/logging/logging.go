// Package logging builds the structured logger shared by every command.
//
// The editor owns the terminal, so its logs go to a rotating file under the
// XDG state directory. Headless commands log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

const logRelPath = "pagecraft/pagecraft.log"

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Format is one of text, json or logfmt. Empty means text.
	Format string
	// File is the log file path. Empty means the XDG state file.
	File string
	// Stderr logs to stderr instead of a file.
	Stderr bool
	// Prefix is printed before every message.
	Prefix string
}

// New returns a logger for opts. The returned closer releases the log file
// and is safe to call when logging to stderr.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		var err error
		level, err = log.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if !opts.Stderr {
		path := opts.File
		if path == "" {
			var err error
			path, err = DefaultLogPath()
			if err != nil {
				return nil, nil, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		w, closer = rotating, rotating
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter(opts.Format),
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// DefaultLogPath returns the log file path under the XDG state directory.
func DefaultLogPath() (string, error) {
	path, err := xdg.StateFile(logRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return path, nil
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
