package host

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/adodb"
)

// method is a dispatchable stream method.
type method func(h *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error)

// methods maps lowercase method names to their implementations.
var methods = map[string]method{
	"open":           callOpen,
	"close":          callClose,
	"cancel":         callCancel,
	"flush":          callFlush,
	"read":           callRead,
	"write":          callWrite,
	"readtext":       callReadText,
	"writetext":      callWriteText,
	"copyto":         callCopyTo,
	"loadfromfile":   callLoadFromFile,
	"savetofile":     callSaveToFile,
	"seteos":         callSetEOS,
	"setendofstream": callSetEOS,
	"skipline":       callSkipLine,
	"stat":           callStat,
}

// invalidArgument wraps ErrInvalidArgument with context.
func invalidArgument(format string, arguments ...interface{}) error {
	return errors.Wrapf(adodb.ErrInvalidArgument, format, arguments...)
}

// optionalInteger extracts an optional integer argument, returning fallback
// if it's omitted.
func optionalInteger(arguments []interface{}, index int, name string, fallback int) (int, error) {
	value, ok := argument(arguments, index)
	if !ok {
		return fallback, nil
	}
	result, ok := integer(value)
	if !ok {
		return 0, invalidArgument("non-numeric %s: %v", name, value)
	}
	return result, nil
}

// Call invokes the named method (matched without regard to case) on the
// object with the specified identifier. Arguments follow scripting
// conventions: nil or missing arguments are omitted, and numeric arguments
// may be supplied as any number or numeric string.
func (h *Host) Call(id, name string, arguments ...interface{}) (interface{}, error) {
	stream, err := h.Object(id)
	if err != nil {
		return nil, err
	}
	implementation, ok := methods[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMember, "unknown method %q", name)
	}
	h.logger.Tracef("Calling %s.%s%v", id, name, arguments)
	result, err := implementation(h, stream, arguments)

	// Arguments may have referenced other objects, so mark the target as most
	// recently used before enforcing the byte limit.
	h.recency.Get(id)
	h.trim()
	if err != nil {
		h.logger.Debugf("Call to %s.%s failed: %v", id, name, err)
		return nil, errors.Wrap(err, strings.ToLower(name))
	}
	return result, nil
}

func callOpen(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	source, _ := argument(arguments, 0)
	parameters := &adodb.OpenParameters{Source: source}
	if value, ok := argument(arguments, 1); ok {
		code, ok := integer(value)
		if !ok {
			return nil, invalidArgument("non-numeric mode: %v", value)
		}
		mode, err := adodb.ModeFromCode(code)
		if err != nil {
			return nil, err
		}
		parameters.Mode = &mode
	}
	options, err := optionalInteger(arguments, 2, "options", 0)
	if err != nil {
		return nil, err
	}
	parameters.Options = options
	if value, ok := argument(arguments, 3); ok {
		parameters.UserName = text(value)
	}
	if value, ok := argument(arguments, 4); ok {
		parameters.Password = text(value)
	}
	return nil, stream.Open(parameters)
}

func callClose(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.Close()
	return nil, nil
}

func callCancel(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.Cancel()
	return nil, nil
}

func callFlush(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.Flush()
	return nil, nil
}

func callRead(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	count, err := optionalInteger(arguments, 0, "byte count", adodb.ReadAll)
	if err != nil {
		return nil, err
	}
	return stream.Read(count)
}

func callWrite(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	var data []byte
	if value, ok := argument(arguments, 0); ok {
		switch v := value.(type) {
		case []byte:
			data = v
		case string:
			data = []byte(v)
		default:
			return nil, invalidArgument("unsupported binary data type %T", value)
		}
	}
	return nil, stream.Write(data)
}

func callReadText(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	count, err := optionalInteger(arguments, 0, "character count", adodb.ReadAll)
	if err != nil {
		return nil, err
	}
	return stream.ReadText(count)
}

func callWriteText(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	value, _ := argument(arguments, 0)
	option := adodb.WriteChars
	if marker, ok := argument(arguments, 1); ok && truthy(marker) {
		code, ok := number(marker)
		if !ok {
			return nil, invalidArgument("invalid line option: %v", marker)
		}
		var err error
		if option, err = adodb.WriteOptionFromCode(code); err != nil {
			return nil, err
		}
	}
	return nil, stream.WriteText(text(value), option)
}

func callCopyTo(h *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	var destination *adodb.Stream
	value, _ := argument(arguments, 0)
	switch v := value.(type) {
	case *adodb.Stream:
		destination = v
	case string:
		object, err := h.Object(v)
		if err != nil {
			return nil, invalidArgument("invalid destination %q", v)
		}
		destination = object
	default:
		return nil, invalidArgument("invalid destination")
	}
	count, err := optionalInteger(arguments, 1, "character count", adodb.CopyAll)
	if err != nil {
		return nil, err
	}
	return nil, stream.CopyTo(destination, count)
}

func callLoadFromFile(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	value, _ := argument(arguments, 0)
	return nil, stream.LoadFromFile(text(value))
}

func callSaveToFile(_ *Host, stream *adodb.Stream, arguments []interface{}) (interface{}, error) {
	value, _ := argument(arguments, 0)
	options, _ := optionalInteger(arguments, 1, "options", 0)
	stream.SaveToFile(text(value), options)
	return nil, nil
}

func callSetEOS(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.SetEOS()
	return nil, nil
}

func callSkipLine(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.SkipLine()
	return nil, nil
}

func callStat(_ *Host, stream *adodb.Stream, _ []interface{}) (interface{}, error) {
	stream.Stat()
	return nil, nil
}
