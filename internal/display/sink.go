package display

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level classifies sink events.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "OK"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Event is one log line flowing through the sink.
type Event struct {
	Time      time.Time
	Level     Level
	Message   string
	AuthorURL string
}

// Sink is the structured log destination the orchestrator and display
// share. Every event is appended to the run's log file; warn and error
// lines carry the profile URL being processed when they occurred. The
// dashboard subscribes for re-renders and reads the tail ring. This
// replaces any interception of process-wide output: collaborators log
// through the sink they are handed.
type Sink struct {
	mu        sync.Mutex
	file      *os.File
	path      string
	tail      []string
	tailLen   int
	warnCount int
	errCount  int
	current   string
	listeners []func(Event)
}

// NewSink opens (creating directories as needed) the run's log file.
func NewSink(logPath string, tailLen int) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logPath, err)
	}
	if tailLen < 1 {
		tailLen = 1
	}
	return &Sink{file: file, path: logPath, tailLen: tailLen}, nil
}

// Path reports the log file location.
func (s *Sink) Path() string { return s.path }

// Size reports the current log file size in bytes.
func (s *Sink) Size() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// SetCurrentURL records the profile URL in flight so subsequent warnings
// and errors are attributable.
func (s *Sink) SetCurrentURL(url string) {
	s.mu.Lock()
	s.current = url
	s.mu.Unlock()
}

// Subscribe registers a listener invoked for every event.
func (s *Sink) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Tail returns a copy of the most recent log lines.
func (s *Sink) Tail() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.tail))
	copy(out, s.tail)
	return out
}

// Counts reports how many warn and error lines the run has produced.
func (s *Sink) Counts() (warns, errs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warnCount, s.errCount
}

// Infof logs an informational line.
func (s *Sink) Infof(format string, args ...interface{}) {
	s.log(LevelInfo, format, args...)
}

// Successf logs a success line.
func (s *Sink) Successf(format string, args ...interface{}) {
	s.log(LevelSuccess, format, args...)
}

// Warnf logs a warning, annotated with the current profile URL.
func (s *Sink) Warnf(format string, args ...interface{}) {
	s.log(LevelWarn, format, args...)
}

// Errorf logs an error, annotated with the current profile URL.
func (s *Sink) Errorf(format string, args ...interface{}) {
	s.log(LevelError, format, args...)
}

func (s *Sink) log(level Level, format string, args ...interface{}) {
	event := Event{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}

	s.mu.Lock()
	if level >= LevelWarn {
		event.AuthorURL = s.current
	}
	switch level {
	case LevelWarn:
		s.warnCount++
	case LevelError:
		s.errCount++
	}

	line := s.formatLine(event)
	if s.file != nil {
		fmt.Fprintln(s.file, line)
	}

	s.tail = append(s.tail, line)
	if len(s.tail) > s.tailLen {
		s.tail = s.tail[len(s.tail)-s.tailLen:]
	}
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

func (s *Sink) formatLine(e Event) string {
	line := fmt.Sprintf("%s [%s] %s", e.Time.Format("2006-01-02 15:04:05"), e.Level, e.Message)
	if e.AuthorURL != "" {
		line += fmt.Sprintf(" (author: %s)", e.AuthorURL)
	}
	return line
}

// Close flushes and closes the log file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
