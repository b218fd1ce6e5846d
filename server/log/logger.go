// Package log provides the logging abstraction used by the table server.
package log

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the formatted logger used by the server and table runners.
type Logger interface {
	// Printf writes the formatted string with values to the logger.
	// Arguments are handled in the manner of fmt.Printf.
	Printf(format string, v ...any)
}

// Config describes a logrus Logger.
type Config struct {
	// Level is the name of the minimum level to log, such as "info" or "debug".
	Level string
	// JSON makes entries be written as json objects rather than text.
	JSON bool
}

// NewLogrus creates a logrus Logger that writes to the writer.
// The logrus Logger also implements the Logger interface.
func (cfg Config) NewLogrus(w io.Writer) (*logrus.Logger, error) {
	if w == nil {
		return nil, fmt.Errorf("creating logger: writer required")
	}
	level := logrus.InfoLevel
	if len(cfg.Level) != 0 {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		level = l
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	switch {
	case cfg.JSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	return l, nil
}

// WithTable returns a Logger that tags each entry with the id of the table.
// Loggers that are not logrus loggers are returned without tags.
func WithTable(l Logger, tableID string) Logger {
	switch lr := l.(type) {
	case *logrus.Logger:
		return lr.WithField("table", tableID)
	case *logrus.Entry:
		return lr.WithField("table", tableID)
	}
	return l
}
