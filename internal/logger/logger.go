// Package logger is the daemon's and CLI's append-only audit sink:
// JSON-lines, 10MB rotation, and a redaction pass before every write.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gzhole/veto/internal/redact"
)

// defaultMaxLogBytes is the file size at which the log is rotated (10 MB).
const defaultMaxLogBytes = 10 * 1024 * 1024

// AuditEvent is one daemon evaluation outcome or CLI operation, emitted to
// the external audit sink.
type AuditEvent struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action,omitempty"`
	Target    string `json:"target,omitempty"`
	Command   string `json:"command,omitempty"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
	Suggest   string `json:"suggest,omitempty"`
	Source    string `json:"source,omitempty"`
	Error     string `json:"error,omitempty"`
}

type AuditLogger struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func New(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	return &AuditLogger{path: path, file: file}, nil
}

// rotateIfNeeded rotates the log file if it has reached defaultMaxLogBytes.
// It renames the current file to <path>.1 (dropping any existing .1) and
// opens a fresh log file. Must be called with l.mu held.
func (l *AuditLogger) rotateIfNeeded() error {
	info, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < defaultMaxLogBytes {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close log before rotation: %w", err)
	}

	rotated := l.path + ".1"
	_ = os.Remove(rotated)
	if err := os.Rename(l.path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open fresh log after rotation: %w", err)
	}
	l.file = f
	return nil
}

// Log redacts, serialises, and appends event as one JSON line.
func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "[veto] warning: log rotation failed: %v\n", err)
	}

	event.Command = redact.Redact(event.Command)
	event.Target = redact.Redact(event.Target)
	if event.Error != "" {
		event.Error = redact.Redact(event.Error)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
