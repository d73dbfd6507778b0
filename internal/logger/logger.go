package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

// Logger provides leveled logging (info/warning/error) on top of the standard logger.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	mu         sync.Mutex
}

// New creates a Logger writing info and warnings to out and errors to errOut.
func New(prefix string, out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		infoLog:    log.New(out, prefix+"INFO    ", flags),
		warningLog: log.New(out, prefix+"WARNING ", flags),
		errorLog:   log.New(errOut, prefix+"ERROR   ", flags),
	}
}

// NewStd creates a Logger on stdout/stderr.
func NewStd(prefix string) *Logger {
	return New(prefix, os.Stdout, os.Stderr)
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New("", io.Discard, io.Discard)
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Printf(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Printf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Printf(format, v...)
}
