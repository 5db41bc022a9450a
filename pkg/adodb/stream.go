package adodb

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/logging"
)

const (
	// DefaultCharset is the charset label of a new stream. It's advisory and
	// doesn't affect storage, which always uses 16-bit code units.
	DefaultCharset = "unicode"
	// Unbounded is the size reported by every stream. Streams have no
	// backing resource, so any size threshold a script checks is exceeded.
	Unbounded = math.MaxInt64
	// CopyAll is the CopyTo count that copies all content.
	CopyAll = -1
)

// OpenParameters are the optional parameters to Stream.Open. Only Mode has an
// effect. The remaining fields describe a backing resource, which streams
// don't have.
type OpenParameters struct {
	// Source is the resource to open.
	Source interface{}
	// Mode is the access mode to set. If nil, the mode is left unchanged.
	Mode *Mode
	// Options are the legacy open options.
	Options int
	// UserName is the user name for the resource.
	UserName string
	// Password is the password for the resource.
	Password string
}

// Stream emulates a scripting-host stream object backed entirely by memory.
// Content is stored as little-endian UTF-16 code units behind a byte order
// mark. Positions and lengths are byte offsets into the content that follows
// the byte order mark, so every character advances the position by two.
//
// Stream is not safe for concurrent use.
type Stream struct {
	// logger is the underlying logger.
	logger *logging.Logger
	// charset is the declared charset label.
	charset string
	// endOfStream indicates whether or not the end of the stream has been
	// set explicitly.
	endOfStream bool
	// lineSeparator is the separator used by line-oriented operations.
	lineSeparator LineSeparator
	// mode is the access mode.
	mode Mode
	// position is the cursor offset in bytes. It's always even and never
	// exceeds the content length while the buffer is present.
	position int
	// state is the connection state.
	state State
	// contentType is the content type.
	contentType ContentType
	// buffer is the byte order mark followed by the content. It's nil once
	// the buffer has been released, in which case the content is empty.
	buffer []byte
}

// New creates a new closed text stream with empty content.
func New(logger *logging.Logger) *Stream {
	stream := &Stream{
		logger:        logger,
		charset:       DefaultCharset,
		lineSeparator: LineSeparatorCRLF,
		mode:          ModeReadOnly,
		state:         StateClosed,
		contentType:   ContentTypeText,
	}
	stream.setContent(nil)
	return stream
}

// content returns the stored bytes that follow the byte order mark.
func (s *Stream) content() []byte {
	if len(s.buffer) >= unitSize && binary.LittleEndian.Uint16(s.buffer) == byteOrderMark {
		return s.buffer[unitSize:]
	}
	return s.buffer
}

// setContent replaces the buffer with a byte order mark followed by a copy of
// data.
func (s *Stream) setContent(data []byte) {
	buffer := make([]byte, unitSize, unitSize+len(data))
	binary.LittleEndian.PutUint16(buffer, byteOrderMark)
	s.buffer = append(buffer, data...)
}

// cursor returns the position as a character offset, clamped to length.
func (s *Stream) cursor(length int) int {
	if offset := s.position / unitSize; offset < length {
		return offset
	}
	return length
}

// lineEnd returns the character offset just past the next line separator at
// or after start. If no separator follows start, the end of the text is
// returned.
func (s *Stream) lineEnd(units []uint16, start int) int {
	separator := s.lineSeparator.units()
	if index := indexUnits(units, separator, start); index >= 0 {
		return index + len(separator)
	}
	return len(units)
}

// Charset returns the declared charset label.
func (s *Stream) Charset() string {
	return s.charset
}

// SetCharset sets the declared charset label.
func (s *Stream) SetCharset(charset string) {
	s.charset = charset
}

// EOS returns whether or not the end of the stream has been set.
func (s *Stream) EOS() bool {
	return s.endOfStream
}

// LineSeparator returns the line separator.
func (s *Stream) LineSeparator() LineSeparator {
	return s.lineSeparator
}

// SetLineSeparator sets the line separator.
func (s *Stream) SetLineSeparator(separator LineSeparator) error {
	if !separator.IsValid() {
		return errors.Wrap(ErrInvalidArgument, "invalid line separator")
	}
	s.lineSeparator = separator
	return nil
}

// Mode returns the access mode.
func (s *Stream) Mode() Mode {
	return s.mode
}

// SetMode sets the access mode.
func (s *Stream) SetMode(mode Mode) error {
	if !mode.IsValid() {
		return errors.Wrap(ErrInvalidArgument, "invalid mode")
	}
	s.mode = mode
	return nil
}

// Position returns the cursor offset in bytes.
func (s *Stream) Position() int {
	return s.position
}

// SetPosition moves the cursor. The position must be a non-negative even
// offset that doesn't exceed the content length.
func (s *Stream) SetPosition(position int) error {
	if position < 0 || position%unitSize != 0 || position > s.Length() {
		return errors.Wrapf(ErrInvalidArgument, "invalid position %d", position)
	}
	s.position = position
	return nil
}

// Size returns the reported stream size, which is always Unbounded.
func (s *Stream) Size() int64 {
	return Unbounded
}

// Length returns the content length in bytes.
func (s *Stream) Length() int {
	return len(s.content())
}

// State returns the connection state.
func (s *Stream) State() State {
	return s.state
}

// Type returns the content type.
func (s *Stream) Type() ContentType {
	return s.contentType
}

// SetType sets the content type.
func (s *Stream) SetType(contentType ContentType) error {
	if !contentType.IsValid() {
		return errors.Wrap(ErrInvalidArgument, "invalid type")
	}
	s.contentType = contentType
	return nil
}

// Open opens the stream. If the buffer has been released, a new empty buffer
// is allocated. The parameters may be nil.
func (s *Stream) Open(parameters *OpenParameters) error {
	if parameters != nil && parameters.Mode != nil {
		if !parameters.Mode.IsValid() {
			return errors.Wrapf(ErrInvalidArgument, "invalid open mode %d", *parameters.Mode)
		}
		s.mode = *parameters.Mode
	}
	if s.buffer == nil {
		s.setContent(nil)
		s.position = 0
	}
	s.state = StateOpen
	s.logger.Debugf("Opened with mode %s", s.mode)
	return nil
}

// Close closes the stream and releases its buffer.
func (s *Stream) Close() {
	s.state = StateClosed
	s.Flush()
}

// Cancel closes the stream without releasing its buffer.
func (s *Stream) Cancel() {
	s.state = StateClosed
}

// Flush releases the buffer. The state and position are unchanged. Until the
// stream is reopened or written, its content reads as empty.
func (s *Stream) Flush() {
	s.buffer = nil
}

// Write writes binary data. Streams don't retain binary payloads, so beyond
// checking the content type the data is discarded.
func (s *Stream) Write(data []byte) error {
	if s.contentType != ContentTypeBinary {
		return errors.Wrap(ErrInvalidOperation, "binary write on text stream")
	}
	s.logger.Debugf("Discarding %d bytes of binary data", len(data))
	return nil
}

// Read reads binary data. Streams don't retain binary payloads, so beyond
// checking the content type it returns no data.
func (s *Stream) Read(count int) ([]byte, error) {
	if s.contentType != ContentTypeBinary {
		return nil, errors.Wrap(ErrInvalidOperation, "binary read on text stream")
	}
	return []byte{}, nil
}

// WriteText appends text, followed by the line separator if option is
// WriteLine, and moves the cursor to the end of the content. Text is always
// appended, regardless of the cursor position.
func (s *Stream) WriteText(text string, option WriteOption) error {
	if s.contentType != ContentTypeText {
		return errors.Wrap(ErrInvalidOperation, "text write on binary stream")
	} else if option != WriteChars && option != WriteLine {
		return errors.Wrapf(ErrInvalidArgument, "invalid write option %d", option)
	}

	if option == WriteLine {
		text += s.lineSeparator.sequence()
	}
	units, err := encodeText(text)
	if err != nil {
		return err
	}

	// A truncated copy can leave a partial trailing code unit, which is
	// dropped so that the appended text stays aligned.
	existing := s.content()
	existing = existing[:len(existing)-len(existing)%unitSize]
	content := make([]byte, 0, len(existing)+len(units)*unitSize)
	content = append(content, existing...)
	content = append(content, bytesFromUnits(units)...)

	s.setContent(content)
	s.position = len(content)
	return nil
}

// ReadText reads text. A count of ReadAll returns the entire text without
// moving the cursor. A count of ReadLine returns the text from the cursor up
// to and including the next line separator (or to the end of the text if
// there is none) and moves the cursor past it. A non-negative count returns
// up to that many characters from the cursor and moves the cursor past them.
func (s *Stream) ReadText(count int) (string, error) {
	if s.contentType != ContentTypeText {
		return "", errors.Wrap(ErrInvalidOperation, "text read on binary stream")
	} else if count < ReadLine {
		return "", errors.Wrapf(ErrInvalidArgument, "invalid character count %d", count)
	}

	units := unitsFromBytes(s.content())
	if count == ReadAll {
		return decodeText(units)
	}

	start := s.cursor(len(units))
	end := len(units)
	if count == ReadLine {
		end = s.lineEnd(units, start)
	} else if count < end-start {
		end = start + count
	}

	text, err := decodeText(units[start:end])
	if err != nil {
		return "", err
	}
	s.position = end * unitSize
	return text, nil
}

// CopyTo copies the access mode, content type, and content to an open
// destination stream, replacing its content. A count of CopyAll copies all
// content, while a non-negative count copies at most that many leading
// bytes. Like positions, the count is measured from the start of the content
// and excludes the byte order mark. The destination receives its own copy of
// the content.
func (s *Stream) CopyTo(destination *Stream, count int) error {
	if destination == nil {
		return errors.Wrap(ErrInvalidArgument, "missing destination")
	} else if destination.state != StateOpen {
		return errors.Wrap(ErrInvalidArgument, "destination is not open")
	} else if count < CopyAll {
		return errors.Wrapf(ErrInvalidArgument, "invalid copy count %d", count)
	}

	destination.mode = s.mode
	destination.contentType = s.contentType

	if s.buffer == nil {
		destination.buffer = nil
		destination.position = 0
		return nil
	}

	content := s.content()
	if count != CopyAll && count < len(content) {
		content = content[:count]
	}
	destination.setContent(content)

	if limit := len(content) - len(content)%unitSize; destination.position > limit {
		destination.position = limit
	}
	return nil
}

// SetEOS marks the end of the stream at the cursor, discarding all content
// after it.
func (s *Stream) SetEOS() {
	units := unitsFromBytes(s.content())
	end := s.cursor(len(units))
	s.setContent(bytesFromUnits(units[:end]))
	s.position = end * unitSize
	s.endOfStream = true
}

// SkipLine moves the cursor past the next line separator, or to the end of the
// text if there is none.
func (s *Stream) SkipLine() {
	s.logger.Debugf("Skipping line from position %d", s.position)
	units := unitsFromBytes(s.content())
	s.position = s.lineEnd(units, s.cursor(len(units))) * unitSize
	s.logger.Debugf("Skipped line to position %d", s.position)
}

// LoadFromFile fails for open streams because no file system backs them.
func (s *Stream) LoadFromFile(fileName string) error {
	if s.state != StateOpen {
		return errors.Wrap(ErrObjectClosed, "unable to load file")
	}
	return errors.Wrapf(ErrFileNotFound, "unable to load %q", fileName)
}

// SaveToFile has no effect.
func (s *Stream) SaveToFile(fileName string, options int) {
	s.logger.Debugf("Ignoring save to %q", fileName)
}

// Stat has no effect.
func (s *Stream) Stat() {}
