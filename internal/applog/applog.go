// Package applog sets up the file-backed structured logger.
//
// The console owns the terminal, so nothing is ever logged to stdout or
// stderr while it runs. Logs go to $XDG_STATE_HOME/insightlens/insightlens.log
// unless a path is configured.
package applog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	appDir      = "insightlens"
	logFileName = "insightlens.log"
)

// Options selects where and how verbosely to log.
type Options struct {
	Path    string
	Verbose bool
}

// DefaultPath returns the log location used when none is configured.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir, logFileName), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve log dir: %w", err)
	}
	return filepath.Join(dir, appDir, logFileName), nil
}

// Open creates the log file (and its directory) and returns a text logger
// writing to it. The returned closer must be closed on exit.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts.Verbose), f, nil
}

// New returns a text logger on w. Verbose lowers the level to debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OpenOrDiscard is Open that never fails: when the file cannot be opened the
// returned logger discards and err carries the reason.
func OpenOrDiscard(opts Options) (*slog.Logger, io.Closer, error) {
	logger, closer, err := Open(opts)
	if err != nil {
		return Discard(), nopCloser{}, errors.Join(errors.New("logging disabled"), err)
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
