package logging

import (
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/scriptemu/adodbstream/pkg/adodbstream"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It writes through the standard
// logger provided by the log package, so it respects any flags or output set
// for that logger. It is safe for concurrent usage.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// level is the maximum level logged.
	level Level
}

// RootLogger is the root logger from which all other loggers derive. It logs
// at LevelDebug if debugging is enabled and at LevelInfo otherwise.
var RootLogger = NewLogger(defaultLevel())

// defaultLevel computes the default root logger level.
func defaultLevel() Level {
	if adodbstream.DebugEnabled {
		return LevelDebug
	}
	return LevelInfo
}

// NewLogger creates a new unprefixed logger with the specified level.
func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

// Level returns the logger's level. A nil logger reports LevelDisabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// Sublogger creates a new sublogger with the specified name. The sublogger
// inherits the logger's level.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix: prefix,
		level:  l.level,
	}
}

// enabled returns whether or not messages at the specified level are logged.
func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

// output is the internal logging method.
func (l *Logger) output(line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log. The call depth skips this method and the public method.
	log.Output(3, line)
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.output(color.RedString("Error: %v", err))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("Warning: %v", err))
	}
}

// Warnf logs a formatted warning with a warning prefix and yellow color.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("Warning: "+format, v...))
	}
}

// Info logs information with semantics equivalent to fmt.Print.
func (l *Logger) Info(v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprint(v...))
	}
}

// Infof logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Debug logs information with semantics equivalent to fmt.Print, but only at
// LevelDebug or above.
func (l *Logger) Debug(v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprint(v...))
	}
}

// Debugf logs information with semantics equivalent to fmt.Printf, but only at
// LevelDebug or above.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Tracef logs information with semantics equivalent to fmt.Printf, but only at
// LevelTrace.
func (l *Logger) Tracef(format string, v ...interface{}) {
	if l.enabled(LevelTrace) {
		l.output(fmt.Sprintf(format, v...))
	}
}
