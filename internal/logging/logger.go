// Package logging implements the script-lifecycle Logger the executor
// consumes, plus the dual file+terminal writer it's built on.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shelltab/shelltab/internal/config"
)

// ANSI color codes used for verbose-mode terminal output.
const (
	ansiDim    = "\033[2m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"

	// ttyTimeFormat matches the charmbracelet/log format used for debug output.
	ttyTimeFormat = "15:04:05 01/02/2006"
)

// Logger writes timestamped lines to a log file and optionally to the
// terminal. It's the low-level writer ScriptLogger is built on.
type Logger struct {
	mu   sync.Mutex
	w    io.Writer
	tty  io.Writer
	file *os.File
}

type option struct{ fileOnly bool }

// Option configures Logger behaviour.
type Option func(*option)

// FileOnly suppresses stderr output; only the log file is written.
func FileOnly() Option { return func(o *option) { o.fileOnly = true } }

// New creates a log file under config.LogDir named after scriptName and the
// current run, ready to receive Log calls.
func New(scriptName string, opts ...Option) (*Logger, error) {
	var cfg option
	for _, o := range opts {
		o(&cfg)
	}

	if err := config.EnsureLogDir(); err != nil {
		return nil, err
	}

	ts := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s.log", scriptName, ts)
	path := filepath.Join(config.LogDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}

	l := &Logger{w: f, file: f}
	if !cfg.fileOnly {
		l.tty = os.Stderr
	}
	return l, nil
}

// Log writes a timestamped line to the file (always) and the terminal (if
// enabled).
func (l *Logger) Log(format string, args ...any) {
	now := time.Now()
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "[%s] %s\n", now.UTC().Format(time.RFC3339), msg)
	if l.tty != nil {
		_, _ = fmt.Fprintf(l.tty, "%s[%s]%s %s\n", ansiDim, now.Format(ttyTimeFormat), ansiReset, msg)
	}
}

// LogColored is Log with an ANSI color wrapped around msg on the tty side
// only; the file copy stays plain text.
func (l *Logger) LogColored(color, format string, args ...any) {
	now := time.Now()
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "[%s] %s\n", now.UTC().Format(time.RFC3339), msg)
	if l.tty != nil {
		_, _ = fmt.Fprintf(l.tty, "%s[%s]%s %s%s%s\n", ansiDim, now.Format(ttyTimeFormat), ansiReset, color, msg, ansiReset)
	}
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	return l.file.Close()
}

// Writer returns an io.Writer that routes each line it's given through Log,
// used to stream a child process's stdout/stderr.
func (l *Logger) Writer(isErr bool) io.Writer {
	return &lineWriter{l: l, isErr: isErr}
}

type lineWriter struct {
	l     *Logger
	isErr bool
}

func (w *lineWriter) Write(p []byte) (int, error) {
	s := string(p)
	for _, line := range splitLines(s) {
		if line == "" {
			continue
		}
		if w.isErr {
			w.l.LogColored(ansiRed, "%s", line)
		} else {
			w.l.Log("%s", line)
		}
	}
	return len(p), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
