package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ideamans/go-l10n"
	"github.com/sirupsen/logrus"
	"github.com/user/framestep/pkg/ports"
)

// FileLogger appends log lines to a file through logrus.
// The window build has no console, so this is where its diagnostics go.
type FileLogger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewFile opens (or creates) path for appending and returns a logger writing to it.
func NewFile(path string, level ports.LogLevel) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(logrusLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	return &FileLogger{entry: logrus.NewEntry(log), file: f}, nil
}

func logrusLevel(level ports.LogLevel) logrus.Level {
	switch level {
	case ports.LevelDebug:
		return logrus.DebugLevel
	case ports.LevelWarn:
		return logrus.WarnLevel
	case ports.LevelError:
		return logrus.ErrorLevel
	case ports.LevelQuiet:
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// Debug logs a debug message.
func (l *FileLogger) Debug(msg string, args ...interface{}) {
	l.entry.Debug(l10n.F(msg, args...))
}

// Info logs an informational message.
func (l *FileLogger) Info(msg string, args ...interface{}) {
	l.entry.Info(l10n.F(msg, args...))
}

// Warn logs a warning message.
func (l *FileLogger) Warn(msg string, args ...interface{}) {
	l.entry.Warn(l10n.F(msg, args...))
}

// Error logs an error message.
func (l *FileLogger) Error(msg string, args ...interface{}) {
	l.entry.Error(l10n.F(msg, args...))
}

// WithComponent returns a logger that tags every line with the component name.
func (l *FileLogger) WithComponent(component string) ports.Logger {
	return &FileLogger{entry: l.entry.WithField("component", component), file: l.file}
}

// Close closes the underlying file.
func (l *FileLogger) Close() error {
	return l.file.Close()
}

var _ ports.Logger = (*FileLogger)(nil)
