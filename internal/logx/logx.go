// Package logx provides the apply/undo append-only log file and stderr
// diagnostics, mirroring the teacher's plain `log` + append-mode file
// writing idiom (core/backup_manager.go warnings, ApplyState.log in the
// Rust original).
package logx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger writes timestamped lines to an append-only log file (typically
// .renamify/apply.log) and, optionally, mirrors them to stderr.
type Logger struct {
	file   *os.File
	stderr bool
}

// Open creates (or appends to) the log file at path. An empty path yields
// an empty, non-nil Logger that silently discards every write.
func Open(path string, mirrorToStderr bool) (*Logger, error) {
	if path == "" {
		return &Logger{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{file: f, stderr: mirrorToStderr}, nil
}

// Printf writes one timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
	if l.file != nil {
		_, _ = l.file.WriteString(line)
	}
	if l.stderr {
		log.Print(msg)
	}
}

// Close flushes and closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
