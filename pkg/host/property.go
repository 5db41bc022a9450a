package host

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/adodb"
)

// Get returns the named property (matched without regard to case) of the
// object with the specified identifier. Enumerated properties are reported
// as their legacy integer codes.
func (h *Host) Get(id, property string) (interface{}, error) {
	stream, err := h.Object(id)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(property) {
	case "charset":
		return stream.Charset(), nil
	case "eos":
		return stream.EOS(), nil
	case "lineseparator":
		return stream.LineSeparator().Code(), nil
	case "mode":
		return stream.Mode().Code(), nil
	case "position":
		return stream.Position(), nil
	case "size":
		return stream.Size(), nil
	case "state":
		return stream.State().Code(), nil
	case "type":
		return stream.Type().Code(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownMember, "unknown property %q", property)
	}
}

// Set assigns the named property (matched without regard to case) of the
// object with the specified identifier. Enumerated properties are assigned
// from their legacy integer codes.
func (h *Host) Set(id, property string, value interface{}) error {
	stream, err := h.Object(id)
	if err != nil {
		return err
	}
	h.logger.Tracef("Setting %s.%s = %v", id, property, value)

	name := strings.ToLower(property)
	switch name {
	case "charset":
		charset, ok := value.(string)
		if !ok {
			return invalidArgument("non-string charset: %v", value)
		}
		stream.SetCharset(charset)
		return nil
	case "eos", "size", "state":
		return errors.Wrapf(adodb.ErrInvalidOperation, "property %q is read-only", property)
	case "lineseparator", "mode", "position", "type":
	default:
		return errors.Wrapf(ErrUnknownMember, "unknown property %q", property)
	}

	// The remaining properties are numeric.
	code, ok := integer(value)
	if !ok {
		return invalidArgument("non-numeric %s: %v", name, value)
	}
	switch name {
	case "lineseparator":
		separator, err := adodb.LineSeparatorFromCode(code)
		if err != nil {
			return err
		}
		return stream.SetLineSeparator(separator)
	case "mode":
		mode, err := adodb.ModeFromCode(code)
		if err != nil {
			return err
		}
		return stream.SetMode(mode)
	case "type":
		contentType, err := adodb.ContentTypeFromCode(code)
		if err != nil {
			return err
		}
		return stream.SetType(contentType)
	default:
		return stream.SetPosition(code)
	}
}
