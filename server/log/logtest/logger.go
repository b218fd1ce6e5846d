// Package logtest implements Loggers that record or ignore output in tests.
package logtest

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/jacobpatterson1549/selene-azul/server/log"
)

// DiscardLogger ignores everything it is given.
var DiscardLogger log.Logger = discardLogger{}

type discardLogger struct{}

// Printf does nothing.
func (discardLogger) Printf(format string, v ...any) {}

// Logger records formatted output so tests can inspect it.
type Logger struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

var _ log.Logger = NewLogger()

// NewLogger creates an empty Logger.
func NewLogger() *Logger {
	return new(Logger)
}

// Printf appends the formatted text.
func (l *Logger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(&l.buf, format, v...)
}

// String returns everything recorded since the last Reset.
func (l *Logger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Empty reports whether nothing has been recorded.
func (l *Logger) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Len() == 0
}

// Reset clears the recorded text.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}
