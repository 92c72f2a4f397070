package kitelog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var flags = log.LstdFlags | log.Lmicroseconds

// Basic logs to stderr without a run prefix
var Basic = &Logger{
	Default: log.New(os.Stderr, "", flags),
}

// Discard drops everything, handy for tests and quiet tools
var Discard = &Logger{
	Default: log.New(io.Discard, "", 0),
}

// NewForRun creates a logger that prefixes lines with the dataset & run identifiers.
func NewForRun(dataset, run string) *Logger {
	return New(os.Stderr, fmt.Sprintf("[dataset=%s run=%s] ", dataset, run))
}

// New creates a logger writing to w with the given prefix
func New(w io.Writer, prefix string) *Logger {
	return &Logger{
		Default: log.New(w, prefix, flags),
	}
}

// Logger encapsulates multiple logging handlers
type Logger struct {
	Default   *log.Logger
	Durations Durations
}

// Interface encapsulates the relevant methods of log.Logger
type Interface interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Printf implements Interface
func (l *Logger) Printf(format string, v ...interface{}) {
	l.Default.Output(2, fmt.Sprintf(format, v...))
}

// Println implements Interface
func (l *Logger) Println(v ...interface{}) {
	l.Default.Output(2, fmt.Sprintln(v...))
}
