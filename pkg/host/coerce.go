package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// argument returns the argument at the specified index. Missing and nil
// arguments are both reported as omitted.
func argument(arguments []interface{}, index int) (interface{}, bool) {
	if index >= len(arguments) || arguments[index] == nil {
		return nil, false
	}
	return arguments[index], true
}

// integer converts a script value to an integer with the semantics of a
// script engine's integer parsing: fractions are truncated and strings
// contribute their leading decimal integer. It reports false if the value has
// no integer interpretation or doesn't fit in an int.
func integer(value interface{}) (int, bool) {
	if v, ok := value.(string); ok {
		return leadingInteger(v)
	}
	return number(value)
}

// number converts a numeric script value to an integer, truncating any
// fraction. Unlike integer, it doesn't accept strings. It reports false for
// non-numeric values and values that don't fit in an int.
func number(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		return unsigned(uint64(v))
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return unsigned(uint64(v))
	case uint64:
		return unsigned(v)
	case float32:
		return truncate(float64(v))
	case float64:
		return truncate(v)
	default:
		return 0, false
	}
}

// unsigned converts an unsigned value to an integer if it fits.
func unsigned(value uint64) (int, bool) {
	if value > math.MaxInt {
		return 0, false
	}
	return int(value), true
}

// truncate converts a float to an integer, discarding any fraction. It reports
// false for NaN and for values outside the range of an int.
func truncate(value float64) (int, bool) {
	value = math.Trunc(value)
	if math.IsNaN(value) || value < math.MinInt || value >= -math.MinInt {
		return 0, false
	}
	return int(value), true
}

// leadingInteger parses the optionally signed decimal integer at the start of
// a string, ignoring leading whitespace and any trailing characters.
func leadingInteger(value string) (int, bool) {
	value = strings.TrimLeftFunc(value, unicode.IsSpace)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	result, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, false
	}
	return result, true
}

// text converts a script value to text.
func text(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// truthy reports whether a script value is truthy.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		if number, ok := integer(v); ok {
			return number != 0
		}
		return true
	}
}
