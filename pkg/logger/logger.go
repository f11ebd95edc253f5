// Package logger provides structured logging for the SaleSnipe client.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry carrying the component field so call sites can
// chain contextual fields without touching logrus directly.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

// Config controls logger construction.
type Config struct {
	// Component is attached to every line as the "component" field.
	Component string
	// Level is a logrus level name ("debug", "info", "warn", "error").
	// Empty or unknown values fall back to info.
	Level string
	// Output defaults to stderr.
	Output io.Writer
}

// New creates a logger from config.
func New(cfg Config) *Logger {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Output != nil {
		base.SetOutput(cfg.Output)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	entry := logrus.NewEntry(base)
	if cfg.Component != "" {
		entry = entry.WithField("component", cfg.Component)
	}
	return &Logger{base: base, entry: entry}
}

// NewDefault creates an info-level logger for the named component.
func NewDefault(component string) *Logger {
	return New(Config{Component: component})
}

// SetOutput redirects all output of the logger, including derived loggers.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// WithField returns a logger with an extra contextual field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithField(key, value)}
}

// WithError returns a logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
