// Package logger routes pipeline diagnostics to the console, to an
// append-only log file, or to both, filtered by verbosity level.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Method selects where messages are written.
type Method int

const (
	MethodNone Method = iota
	MethodConsole
	MethodFile
	MethodBoth
)

// Level selects how much is written.
type Level int

const (
	LevelNone Level = iota
	LevelNormal
	LevelVerbose
)

// DefaultLogFile is the file used when file output is requested
// without an explicit path.
const DefaultLogFile = "css_extractor_output.log"

// Logger writes one message per line. The log file, when enabled, is
// opened for appending and receives the bare message; the console line
// carries a [LOG] prefix and an optional uppercased tag.
type Logger struct {
	level   Level
	console *log.Logger
	file    *os.File
	fileLog *log.Logger
}

// New returns a logger for the given method and level. The log file is
// opened only when method includes file output.
func New(method Method, level Level, logFile string) (*Logger, error) {
	if method < MethodNone || method > MethodBoth {
		return nil, fmt.Errorf("unknown log method %d", method)
	}
	if level < LevelNone || level > LevelVerbose {
		return nil, fmt.Errorf("unknown log level %d", level)
	}
	l := &Logger{level: level}
	if method == MethodConsole || method == MethodBoth {
		l.console = log.New(os.Stdout, "", 0)
	}
	if method == MethodFile || method == MethodBoth {
		if logFile == "" {
			logFile = DefaultLogFile
		}
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.fileLog = log.New(f, "", 0)
	}
	return l, nil
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) emit(tag, content string) {
	if l.fileLog != nil {
		l.fileLog.Println(content)
	}
	if l.console != nil {
		if tag != "" {
			l.console.Printf("[LOG]: [%s]: %s", strings.ToUpper(tag), content)
		} else {
			l.console.Printf("[LOG]: %s", content)
		}
	}
}

// Printf logs a message at normal level.
func (l *Logger) Printf(format string, args ...interface{}) {
	if l.level >= LevelNormal {
		l.emit("", fmt.Sprintf(format, args...))
	}
}

// Taggedf logs a message at normal level with a tag, uppercased on the
// console. Tags carry failure reasons (an HTTP status, "error") and
// pipeline milestones ("finished").
func (l *Logger) Taggedf(tag, format string, args ...interface{}) {
	if l.level >= LevelNormal {
		l.emit(tag, fmt.Sprintf(format, args...))
	}
}

// Verbosef logs a message at verbose level.
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LevelVerbose {
		l.emit("verbose", fmt.Sprintf(format, args...))
	}
}
