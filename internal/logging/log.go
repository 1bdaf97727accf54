// Package logging provides the modem's leveled console logger and its
// daily-rotating CSV decode log, replacing the teacher's global
// text_color_set/dw_printf color state with a single structured logger
// passed to collaborators.
package logging

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// New builds the console logger used throughout the modem, styled after
// the severities the teacher distinguishes with color (info, error,
// received frame, decoded frame, transmitted frame, debug) but expressed as
// charmbracelet/log levels rather than global state. The three frame
// severities have no level or field of their own.
func New(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l
}

// DecodeLog writes one CSV row per decoded frame to a daily-named file
// under dir, matching log_init(daily_names=true, path) except that the
// daily name pattern is built with strftime rather than hand-rolled
// date formatting.
type DecodeLog struct {
	dir     string
	pattern *strftime.Strftime

	mu       sync.Mutex
	openName string
	file     *os.File
	writer   *csv.Writer
}

// NewDecodeLog prepares a decode log rooted at dir; dir is created if it
// does not already exist. An empty dir disables logging: WriteFrame becomes
// a no-op, matching log_init's "empty string disables feature" contract.
func NewDecodeLog(dir string) (*DecodeLog, error) {
	if dir == "" {
		return &DecodeLog{}, nil
	}
	if stat, err := os.Stat(dir); err != nil {
		if mkErr := os.Mkdir(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("logging: create decode log directory %q: %w", dir, mkErr)
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("logging: decode log location %q is not a directory", dir)
	}

	pattern, err := strftime.New("%Y%m%d.csv")
	if err != nil {
		return nil, fmt.Errorf("logging: build daily name pattern: %w", err)
	}
	return &DecodeLog{dir: dir, pattern: pattern}, nil
}

// WriteFrame appends one row: timestamp, channel, byte length, hex bytes.
// It rotates to a new daily file automatically when the date changes.
func (l *DecodeLog) WriteFrame(when time.Time, channel int, frame []byte) error {
	if l.dir == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	name := l.pattern.FormatString(when)
	if name != l.openName {
		if l.file != nil {
			l.writer.Flush()
			l.file.Close()
		}
		f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("logging: open decode log %q: %w", name, err)
		}
		l.file = f
		l.writer = csv.NewWriter(f)
		l.openName = name
	}

	row := []string{
		when.Format(time.RFC3339Nano),
		fmt.Sprintf("%d", channel),
		fmt.Sprintf("%d", len(frame)),
		fmt.Sprintf("%x", frame),
	}
	if err := l.writer.Write(row); err != nil {
		return err
	}
	l.writer.Flush()
	return l.writer.Error()
}

// Close flushes and closes the currently open daily file, if any.
func (l *DecodeLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	l.writer.Flush()
	return l.file.Close()
}
