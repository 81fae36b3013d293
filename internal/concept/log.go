package concept

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log collects the diagnostics of one conversion run. Each Model owns its
// own Log, so several conversions can run in one process.
type Log struct {
	logger     *logrus.Logger
	path       string
	closer     io.Closer
	warnings   int
	exclusions int
}

// NewLog writes diagnostics to w. A nil w discards them but still counts.
func NewLog(w io.Writer) *Log {
	if w == nil {
		w = io.Discard
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return &Log{logger: logger}
}

// OpenLog creates (or truncates) the log file at path.
func OpenLog(path string) (*Log, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := NewLog(f)
	l.path = path
	l.closer = f
	return l, nil
}

// Warn records a warning: something could not be converted faithfully.
func (l *Log) Warn(msg string, fields logrus.Fields) {
	l.warnings++
	l.logger.WithFields(fields).Warn(msg)
}

// Exclusion records a beam removed by the selection options.
func (l *Log) Exclusion(msg string, fields logrus.Fields) {
	l.exclusions++
	l.logger.WithFields(fields).WithField("kind", "exclusion").Info(msg)
}

// Info records an informational message. It is not counted.
func (l *Log) Info(msg string, fields logrus.Fields) {
	l.logger.WithFields(fields).Info(msg)
}

// Debug is for tracing individual algorithm steps.
func (l *Log) Debug(msg string, fields logrus.Fields) {
	l.logger.WithFields(fields).Debug(msg)
}

// Warnings returns the number of warnings recorded so far.
func (l *Log) Warnings() int { return l.warnings }

// Exclusions returns the number of exclusions recorded so far.
func (l *Log) Exclusions() int { return l.exclusions }

// Count returns the number of messages the user should look at.
func (l *Log) Count() int { return l.warnings + l.exclusions }

// Path is the log file path, or "" when logging to a writer.
func (l *Log) Path() string { return l.path }

// Status summarizes the run for the end user.
func (l *Log) Status() string {
	n := l.Count()
	if n == 0 {
		return "There are no error/warning messages reported."
	}
	where := "the log output"
	if l.path != "" {
		where = "file " + l.path
	}
	return fmt.Sprintf("There are %d error/warning messages. See %s for more details.", n, where)
}

// Close flushes and closes the log file. It is safe to call more than once.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.logger.SetOutput(io.Discard)
	return err
}
