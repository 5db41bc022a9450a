package logging

// Level represents a log level. Levels are ordered, so a logger at a given
// level also logs everything at lower levels.
type Level uint

const (
	// LevelDisabled indicates that logging is completely disabled.
	LevelDisabled Level = iota
	// LevelError indicates that only errors are logged.
	LevelError
	// LevelWarn indicates that errors and warnings are logged.
	LevelWarn
	// LevelInfo indicates that object lifecycle events are logged.
	LevelInfo
	// LevelDebug indicates that individual stream operations are logged.
	LevelDebug
	// LevelTrace indicates that host dispatch and argument coercion are
	// logged.
	LevelTrace
)

// levelNames maps level names to levels.
var levelNames = map[string]Level{
	"disabled": LevelDisabled,
	"error":    LevelError,
	"warn":     LevelWarn,
	"info":     LevelInfo,
	"debug":    LevelDebug,
	"trace":    LevelTrace,
}

// NameToLevel converts a level name to a Level. It returns a boolean
// indicating whether or not the name was valid. If the name is invalid,
// LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	level, ok := levelNames[name]
	return level, ok
}

// String returns the level name.
func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return "unknown"
}
