package ftp

import "github.com/sirupsen/logrus"

// Logger is the logging hook the engine uses for protocol tracing. The
// shape matches zmodem.Logger in the teacher repo this package is
// descended from: three leveled, printf-style methods, all optional via
// NoopLogger.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It's the default for tests and for
// callers that don't care about protocol tracing.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}

// LogrusLogger backs Logger with a *logrus.Logger, giving structured,
// leveled output (with the peer identity attached as a field) instead of
// the teacher's bare fmt.Fprintf-to-file logger.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps l (or logrus.StandardLogger() if l is nil) with
// the peer's target system/component id attached to every line.
func NewLogrusLogger(l *logrus.Logger, targetSystemID, targetComponentID uint8) *LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusLogger{
		entry: l.WithFields(logrus.Fields{
			"target_system":    targetSystemID,
			"target_component": targetComponentID,
		}),
	}
}

func (l *LogrusLogger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *LogrusLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *LogrusLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}
