// Package logger implements the launcher's debug log sink: a
// timestamped per-run file with level filtering, plus the platform
// debug channel on Windows. The sink is write-only; nothing in the
// launch sequence depends on reading it back.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/stagehand/internal/filelock"
)

// Log levels in increasing severity.
const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelOff
)

func levelToInt(level string) int {
	switch strings.ToLower(level) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// DebugLog writes launch traces to a per-run log file. It is safe for
// concurrent use, though the launcher itself is single-threaded.
type DebugLog struct {
	mu    sync.Mutex
	file  *os.File
	level int
	runID string
}

// New creates a DebugLog writing to a fresh run file under logDir.
// A "latest" pointer file in logDir names the current run file; it is
// updated under a file lock because several launcher instances can
// start at once.
func New(logDir, level string) (*DebugLog, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.New().String()
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", timestamp, runID[:8]))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Best effort: losing the pointer must not fail the launch.
	_ = filelock.LockAndWrite(filepath.Join(logDir, "latest"), []byte(filepath.Base(runFile)+"\n"))

	log := &DebugLog{
		file:  file,
		level: levelToInt(level),
		runID: runID,
	}
	log.write(fmt.Sprintf("=== Launch %s ===\n", runID))
	log.write(fmt.Sprintf("Started at: %s\n", time.Now().Format(time.RFC3339)))
	return log, nil
}

// Nop returns a DebugLog that discards everything. Useful when the log
// directory cannot be created; the launch still proceeds.
func Nop() *DebugLog {
	return &DebugLog{level: levelOff}
}

// RunID identifies this launch in the log header and file name.
func (l *DebugLog) RunID() string {
	return l.runID
}

// Logf records a debug-level trace line.
func (l *DebugLog) Logf(format string, args ...interface{}) {
	l.logWithLevel(levelDebug, "DEBUG", fmt.Sprintf(format, args...))
}

// LogString records a name/value pair at debug level.
func (l *DebugLog) LogString(name, value string) {
	l.logWithLevel(levelDebug, "DEBUG", fmt.Sprintf("%s=%s", name, value))
}

// Infof records an info-level line.
func (l *DebugLog) Infof(format string, args ...interface{}) {
	l.logWithLevel(levelInfo, "INFO", fmt.Sprintf(format, args...))
}

// Warnf records a warn-level line.
func (l *DebugLog) Warnf(format string, args ...interface{}) {
	l.logWithLevel(levelWarn, "WARN", fmt.Sprintf(format, args...))
}

// Errorf records an error-level line.
func (l *DebugLog) Errorf(format string, args ...interface{}) {
	l.logWithLevel(levelError, "ERROR", fmt.Sprintf(format, args...))
}

func (l *DebugLog) logWithLevel(level int, tag, message string) {
	if level < l.level {
		return
	}
	debugOutput(message)
	l.write(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), tag, message))
}

func (l *DebugLog) write(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.WriteString(message)
		// Flush per write; the process may exit abruptly after a launch
		// failure.
		l.file.Sync()
	}
}

// Close flushes and closes the run log file.
func (l *DebugLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}
	l.file = nil
	return nil
}
