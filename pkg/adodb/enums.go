package adodb

import (
	"github.com/pkg/errors"
)

// LineSeparator identifies the character sequence that terminates a line for
// line-oriented text operations.
type LineSeparator uint8

const (
	// LineSeparatorCRLF indicates a carriage return followed by a line feed.
	LineSeparatorCRLF LineSeparator = iota
	// LineSeparatorLF indicates a line feed.
	LineSeparatorLF
	// LineSeparatorCR indicates a carriage return.
	LineSeparatorCR
)

// Legacy line separator codes.
const (
	lineSeparatorCodeCRLF = -1
	lineSeparatorCodeLF   = 10
	lineSeparatorCodeCR   = 13
)

// LineSeparatorFromCode converts a legacy line separator code.
func LineSeparatorFromCode(code int) (LineSeparator, error) {
	switch code {
	case lineSeparatorCodeCRLF:
		return LineSeparatorCRLF, nil
	case lineSeparatorCodeLF:
		return LineSeparatorLF, nil
	case lineSeparatorCodeCR:
		return LineSeparatorCR, nil
	default:
		return LineSeparatorCRLF, errors.Wrapf(ErrInvalidArgument, "unknown line separator code %d", code)
	}
}

// ParseLineSeparator converts a line separator name ("crlf", "lf" or "cr").
func ParseLineSeparator(name string) (LineSeparator, error) {
	switch name {
	case "crlf":
		return LineSeparatorCRLF, nil
	case "lf":
		return LineSeparatorLF, nil
	case "cr":
		return LineSeparatorCR, nil
	default:
		return LineSeparatorCRLF, errors.Wrapf(ErrInvalidArgument, "unknown line separator name %q", name)
	}
}

// IsValid returns whether or not the line separator is a known value.
func (s LineSeparator) IsValid() bool {
	return s <= LineSeparatorCR
}

// Code returns the legacy code for the line separator.
func (s LineSeparator) Code() int {
	switch s {
	case LineSeparatorLF:
		return lineSeparatorCodeLF
	case LineSeparatorCR:
		return lineSeparatorCodeCR
	default:
		return lineSeparatorCodeCRLF
	}
}

// String returns the line separator name.
func (s LineSeparator) String() string {
	switch s {
	case LineSeparatorCRLF:
		return "crlf"
	case LineSeparatorLF:
		return "lf"
	case LineSeparatorCR:
		return "cr"
	default:
		return "unknown"
	}
}

// sequence returns the text that the separator represents.
func (s LineSeparator) sequence() string {
	switch s {
	case LineSeparatorLF:
		return "\n"
	case LineSeparatorCR:
		return "\r"
	default:
		return "\r\n"
	}
}

// units returns the separator as code units.
func (s LineSeparator) units() []uint16 {
	switch s {
	case LineSeparatorLF:
		return []uint16{'\n'}
	case LineSeparatorCR:
		return []uint16{'\r'}
	default:
		return []uint16{'\r', '\n'}
	}
}

// Mode is the access mode of a stream.
type Mode uint8

const (
	// ModeUnknown indicates that permissions have not been set.
	ModeUnknown Mode = iota
	// ModeReadOnly indicates read-only access.
	ModeReadOnly
	// ModeWriteOnly indicates write-only access.
	ModeWriteOnly
	// ModeReadWrite indicates read/write access.
	ModeReadWrite
)

// ModeFromCode converts a legacy mode code. Valid codes are 0 through 3.
func ModeFromCode(code int) (Mode, error) {
	if code < int(ModeUnknown) || code > int(ModeReadWrite) {
		return ModeUnknown, errors.Wrapf(ErrInvalidArgument, "mode code %d out of range", code)
	}
	return Mode(code), nil
}

// ParseMode converts a mode name ("unknown", "read", "write" or
// "readwrite").
func ParseMode(name string) (Mode, error) {
	switch name {
	case "unknown":
		return ModeUnknown, nil
	case "read":
		return ModeReadOnly, nil
	case "write":
		return ModeWriteOnly, nil
	case "readwrite":
		return ModeReadWrite, nil
	default:
		return ModeUnknown, errors.Wrapf(ErrInvalidArgument, "unknown mode name %q", name)
	}
}

// IsValid returns whether or not the mode is a known value.
func (m Mode) IsValid() bool {
	return m <= ModeReadWrite
}

// Code returns the legacy code for the mode.
func (m Mode) Code() int {
	return int(m)
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeUnknown:
		return "unknown"
	case ModeReadOnly:
		return "read"
	case ModeWriteOnly:
		return "write"
	case ModeReadWrite:
		return "readwrite"
	default:
		return "invalid"
	}
}

// State is the connection state of a stream. Only StateClosed and StateOpen
// are reachable through stream operations.
type State uint8

const (
	// StateClosed indicates that the stream is closed.
	StateClosed State = iota
	// StateOpen indicates that the stream is open.
	StateOpen
	// StateConnecting indicates that the stream is connecting.
	StateConnecting
	// StateExecuting indicates that the stream is executing a command.
	StateExecuting
	// StateRetrieving indicates that the stream is retrieving rows.
	StateRetrieving
)

// Code returns the legacy code for the state. Legacy state codes are bit
// flags.
func (s State) Code() int {
	switch s {
	case StateOpen:
		return 1
	case StateConnecting:
		return 2
	case StateExecuting:
		return 4
	case StateRetrieving:
		return 8
	default:
		return 0
	}
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateConnecting:
		return "connecting"
	case StateExecuting:
		return "executing"
	case StateRetrieving:
		return "retrieving"
	default:
		return "unknown"
	}
}

// ContentType is the type of data held by a stream. It determines which of
// the binary and text operation families is permitted.
type ContentType uint8

const (
	// ContentTypeText indicates text data.
	ContentTypeText ContentType = iota
	// ContentTypeBinary indicates binary data.
	ContentTypeBinary
)

// Legacy content type codes.
const (
	contentTypeCodeBinary = 1
	contentTypeCodeText   = 2
)

// ContentTypeFromCode converts a legacy content type code.
func ContentTypeFromCode(code int) (ContentType, error) {
	switch code {
	case contentTypeCodeBinary:
		return ContentTypeBinary, nil
	case contentTypeCodeText:
		return ContentTypeText, nil
	default:
		return ContentTypeText, errors.Wrapf(ErrInvalidArgument, "unknown type code %d", code)
	}
}

// ParseContentType converts a content type name ("binary" or "text").
func ParseContentType(name string) (ContentType, error) {
	switch name {
	case "binary":
		return ContentTypeBinary, nil
	case "text":
		return ContentTypeText, nil
	default:
		return ContentTypeText, errors.Wrapf(ErrInvalidArgument, "unknown type name %q", name)
	}
}

// IsValid returns whether or not the content type is a known value.
func (t ContentType) IsValid() bool {
	return t <= ContentTypeBinary
}

// Code returns the legacy code for the content type.
func (t ContentType) Code() int {
	if t == ContentTypeBinary {
		return contentTypeCodeBinary
	}
	return contentTypeCodeText
}

// String returns the content type name.
func (t ContentType) String() string {
	switch t {
	case ContentTypeBinary:
		return "binary"
	case ContentTypeText:
		return "text"
	default:
		return "unknown"
	}
}

const (
	// ReadAll is the ReadText count that reads the entire text.
	ReadAll = -1
	// ReadLine is the ReadText count that reads up to and including the next
	// line separator.
	ReadLine = -2
)

// WriteOption controls whether WriteText appends a line separator.
type WriteOption uint8

const (
	// WriteChars writes only the specified text.
	WriteChars WriteOption = iota
	// WriteLine writes the specified text followed by the line separator.
	WriteLine
)

// WriteOptionFromCode converts a legacy write option code (0 or 1).
func WriteOptionFromCode(code int) (WriteOption, error) {
	switch code {
	case 0:
		return WriteChars, nil
	case 1:
		return WriteLine, nil
	default:
		return WriteChars, errors.Wrapf(ErrInvalidArgument, "unknown write option %d", code)
	}
}
