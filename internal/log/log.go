// Package log provides the leveled logging backend shared by the key manager
// and the command line tool.
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/op/go-logging.v1"
)

const logFormat = "%{time:15:04:05.000} %{level:.4s} %{module}: %{message}"

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// Backend is a go-logging backend writing to stderr, a file, or nowhere.
type Backend struct {
	sync.RWMutex

	backend logging.LeveledBackend
	w       io.WriteCloser
}

var _ logging.LeveledBackend = (*Backend)(nil)

// New creates a backend. An empty file logs to stderr, keeping stdout for
// command output; disable discards everything.
func New(file, level string, disable bool) (*Backend, error) {
	if _, err := ParseLevel(level); err != nil {
		return nil, err
	}

	switch {
	case disable:
		return newBackend(nopCloser{io.Discard}, level)
	case file == "":
		return newBackend(nopCloser{os.Stderr}, level)
	default:
		const fileMode = 0600
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
		if err != nil {
			return nil, errors.WithMessage(err, "log: failed to open log file")
		}
		return newBackend(f, level)
	}
}

// NewWriter creates a backend logging to w. Close leaves w open.
func NewWriter(w io.Writer, level string) (*Backend, error) {
	return newBackend(nopCloser{w}, level)
}

func newBackend(w io.WriteCloser, level string) (*Backend, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	b := &Backend{w: w}
	base := logging.NewLogBackend(b.w, "", 0)
	formatted := logging.NewBackendFormatter(base, logging.MustStringFormatter(logFormat))
	b.backend = logging.AddModuleLevel(formatted)
	b.backend.SetLevel(lvl, "")
	return b, nil
}

// Discard returns a backend that drops every record.
func Discard() *Backend {
	b, err := New("", "ERROR", true)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Backend) Log(level logging.Level, calldepth int, record *logging.Record) error {
	b.RLock()
	defer b.RUnlock()
	return b.backend.Log(level, calldepth, record)
}

func (b *Backend) GetLevel(module string) logging.Level {
	b.RLock()
	defer b.RUnlock()
	return b.backend.GetLevel(module)
}

func (b *Backend) SetLevel(level logging.Level, module string) {
	b.Lock()
	defer b.Unlock()
	b.backend.SetLevel(level, module)
}

func (b *Backend) IsEnabledFor(level logging.Level, module string) bool {
	b.RLock()
	defer b.RUnlock()
	return b.backend.IsEnabledFor(level, module)
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b)
	return l
}

// Close releases the log file, if any.
func (b *Backend) Close() error {
	b.Lock()
	defer b.Unlock()
	return b.w.Close()
}

// ParseLevel maps ERROR, WARNING, NOTICE, INFO and DEBUG (any case) to a level.
func ParseLevel(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, errors.Errorf("log: invalid level: '%v'", l)
	}
}
