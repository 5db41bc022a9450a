package adodb

import (
	"testing"
)

// newOpenStream creates an open stream for testing.
func newOpenStream(t *testing.T) *Stream {
	stream := New(nil)
	if err := stream.Open(nil); err != nil {
		t.Fatal("unable to open stream:", err)
	}
	return stream
}

// writeText writes text to a stream, failing the test on error.
func writeText(t *testing.T, stream *Stream, text string) {
	if err := stream.WriteText(text, WriteChars); err != nil {
		t.Fatal("unable to write text:", err)
	}
}

// readText reads text from a stream, failing the test on error.
func readText(t *testing.T, stream *Stream, count int) string {
	text, err := stream.ReadText(count)
	if err != nil {
		t.Fatal("unable to read text:", err)
	}
	return text
}

// setPosition moves a stream cursor, failing the test on error.
func setPosition(t *testing.T, stream *Stream, position int) {
	if err := stream.SetPosition(position); err != nil {
		t.Fatal("unable to set position:", err)
	}
}

// TestNewDefaults tests the properties of a new stream.
func TestNewDefaults(t *testing.T) {
	stream := New(nil)
	if stream.State() != StateClosed {
		t.Error("new stream not closed:", stream.State())
	}
	if stream.Type() != ContentTypeText {
		t.Error("new stream not text:", stream.Type())
	}
	if stream.Mode() != ModeReadOnly {
		t.Error("new stream not read-only:", stream.Mode())
	}
	if stream.LineSeparator() != LineSeparatorCRLF {
		t.Error("new stream line separator not CRLF:", stream.LineSeparator())
	}
	if stream.Charset() != DefaultCharset {
		t.Error("new stream has unexpected charset:", stream.Charset())
	}
	if stream.Position() != 0 {
		t.Error("new stream position non-zero:", stream.Position())
	}
	if stream.EOS() {
		t.Error("new stream at end of stream")
	}
	if stream.Size() != Unbounded {
		t.Error("new stream size is bounded:", stream.Size())
	}
	if stream.Length() != 0 {
		t.Error("new stream has content:", stream.Length())
	}
	if text := readText(t, stream, ReadAll); text != "" {
		t.Errorf("new stream text is %q", text)
	}
	if len(stream.buffer) != unitSize {
		t.Error("new stream buffer does not hold only a byte order mark")
	}
}

// TestWriteTextRoundTrip tests that written text reads back in full.
func TestWriteTextRoundTrip(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "hello")
	if stream.Position() != 10 {
		t.Error("position not at end after write:", stream.Position())
	}
	if text := readText(t, stream, ReadAll); text != "hello" {
		t.Errorf("read %q after writing hello", text)
	}
	if stream.Position() != 10 {
		t.Error("full read moved position:", stream.Position())
	}

	writeText(t, stream, " world")
	if text := readText(t, stream, ReadAll); text != "hello world" {
		t.Errorf("read %q after appending", text)
	}
}

// TestWriteLine tests that WriteLine appends the configured separator.
func TestWriteLine(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		separator LineSeparator
		expected  string
	}{
		{LineSeparatorCRLF, "a\r\n"},
		{LineSeparatorLF, "a\n"},
		{LineSeparatorCR, "a\r"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		stream := newOpenStream(t)
		if err := stream.SetLineSeparator(testCase.separator); err != nil {
			t.Fatal("unable to set line separator:", err)
		}
		if err := stream.WriteText("a", WriteLine); err != nil {
			t.Fatal("unable to write line:", err)
		}
		if text := readText(t, stream, ReadAll); text != testCase.expected {
			t.Errorf("%s: read %q, expected %q", testCase.separator, text, testCase.expected)
		}
	}
}

// TestWriteTextInvalidOption tests that unknown write options are rejected
// without modifying the stream.
func TestWriteTextInvalidOption(t *testing.T) {
	stream := newOpenStream(t)
	if err := stream.WriteText("a", WriteOption(2)); KindOf(err) != KindInvalidArgument {
		t.Error("unexpected error for invalid write option:", err)
	}
	if stream.Length() != 0 {
		t.Error("rejected write modified content")
	}
}

// TestReadLine tests line reads with a line feed separator.
func TestReadLine(t *testing.T) {
	stream := newOpenStream(t)
	if err := stream.SetLineSeparator(LineSeparatorLF); err != nil {
		t.Fatal("unable to set line separator:", err)
	}
	writeText(t, stream, "a\nb")
	setPosition(t, stream, 0)

	if line := readText(t, stream, ReadLine); line != "a\n" {
		t.Errorf("first line is %q", line)
	}
	if stream.Position() != 4 {
		t.Error("unexpected position after first line:", stream.Position())
	}
	if line := readText(t, stream, ReadLine); line != "b" {
		t.Errorf("second line is %q", line)
	}
	if stream.Position() != stream.Length() {
		t.Error("position not at end after last line:", stream.Position())
	}
	if line := readText(t, stream, ReadLine); line != "" {
		t.Errorf("line read at end returned %q", line)
	}
}

// TestReadLineCRLF tests line reads with the default separator.
func TestReadLineCRLF(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "one\r\ntwo\nstill two\r\nthree")
	setPosition(t, stream, 0)

	expected := []string{"one\r\n", "two\nstill two\r\n", "three"}
	for _, e := range expected {
		if line := readText(t, stream, ReadLine); line != e {
			t.Errorf("read line %q, expected %q", line, e)
		}
	}
}

// TestReadCount tests reads of a fixed number of characters.
func TestReadCount(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abcdef")
	setPosition(t, stream, 0)

	if text := readText(t, stream, 2); text != "ab" {
		t.Errorf("read %q", text)
	}
	if stream.Position() != 4 {
		t.Error("unexpected position:", stream.Position())
	}
	if text := readText(t, stream, 0); text != "" {
		t.Errorf("zero-length read returned %q", text)
	}
	if text := readText(t, stream, 100); text != "cdef" {
		t.Errorf("overlong read returned %q", text)
	}
	if stream.Position() != 12 {
		t.Error("overlong read moved position beyond content:", stream.Position())
	}
}

// TestReadTextInvalidCount tests that counts below ReadLine are rejected.
func TestReadTextInvalidCount(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")
	if _, err := stream.ReadText(-3); KindOf(err) != KindInvalidArgument {
		t.Error("unexpected error for invalid count:", err)
	}
	if stream.Position() != 6 {
		t.Error("rejected read moved position:", stream.Position())
	}
}

// TestSurrogatePairs tests that characters outside the basic multilingual
// plane occupy two code units.
func TestSurrogatePairs(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "x\U0001F600y")
	if stream.Length() != 8 {
		t.Error("unexpected content length:", stream.Length())
	}
	setPosition(t, stream, 2)
	if text := readText(t, stream, 2); text != "\U0001F600" {
		t.Errorf("read %q", text)
	}
	if text := readText(t, stream, ReadAll); text != "x\U0001F600y" {
		t.Errorf("full read returned %q", text)
	}
}

// TestTypeGating tests that each operation family requires its content type.
func TestTypeGating(t *testing.T) {
	text := newOpenStream(t)
	if err := text.Write([]byte{1}); KindOf(err) != KindInvalidOperation {
		t.Error("binary write on text stream not rejected:", err)
	}
	if _, err := text.Read(1); KindOf(err) != KindInvalidOperation {
		t.Error("binary read on text stream not rejected:", err)
	}

	binary := newOpenStream(t)
	if err := binary.SetType(ContentTypeBinary); err != nil {
		t.Fatal("unable to set type:", err)
	}
	if err := binary.WriteText("a", WriteChars); KindOf(err) != KindInvalidOperation {
		t.Error("text write on binary stream not rejected:", err)
	}
	if _, err := binary.ReadText(ReadAll); KindOf(err) != KindInvalidOperation {
		t.Error("text read on binary stream not rejected:", err)
	}
	if err := binary.Write([]byte{1, 2, 3}); err != nil {
		t.Error("binary write on binary stream failed:", err)
	}
	if data, err := binary.Read(3); err != nil {
		t.Error("binary read on binary stream failed:", err)
	} else if len(data) != 0 {
		t.Error("binary read returned data:", data)
	}
}

// TestOpen tests open mode validation.
func TestOpen(t *testing.T) {
	stream := New(nil)
	invalid := Mode(5)
	if err := stream.Open(&OpenParameters{Source: "source", Mode: &invalid}); KindOf(err) != KindInvalidArgument {
		t.Error("invalid open mode not rejected:", err)
	}
	if stream.State() != StateClosed || stream.Mode() != ModeReadOnly {
		t.Error("rejected open modified stream")
	}

	mode := ModeWriteOnly
	if err := stream.Open(&OpenParameters{Source: "source", Mode: &mode}); err != nil {
		t.Fatal("unable to open stream:", err)
	}
	if stream.State() != StateOpen {
		t.Error("stream not open:", stream.State())
	}
	if stream.Mode().Code() != 2 {
		t.Error("unexpected mode:", stream.Mode())
	}
}

// TestCloseReleasesBuffer tests that closing releases content and that
// reopening allocates a new buffer.
func TestCloseReleasesBuffer(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")
	stream.Close()
	stream.Close()
	if stream.State() != StateClosed {
		t.Error("stream not closed")
	}
	if stream.buffer != nil {
		t.Error("buffer not released")
	}
	if text := readText(t, stream, ReadAll); text != "" {
		t.Errorf("released buffer read as %q", text)
	}

	if err := stream.Open(nil); err != nil {
		t.Fatal("unable to reopen stream:", err)
	}
	if stream.buffer == nil || stream.Length() != 0 || stream.Position() != 0 {
		t.Error("reopened stream does not have an empty buffer")
	}
}

// TestCancel tests that cancellation closes without releasing content.
func TestCancel(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")
	stream.Cancel()
	if stream.State() != StateClosed {
		t.Error("stream not closed")
	}
	if text := readText(t, stream, ReadAll); text != "abc" {
		t.Errorf("content after cancel is %q", text)
	}
}

// TestFlush tests that flushing releases content without changing state or
// position, and that a subsequent write allocates a new buffer.
func TestFlush(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")
	stream.Flush()
	if stream.State() != StateOpen {
		t.Error("flush changed state")
	}
	if stream.Position() != 6 {
		t.Error("flush changed position")
	}
	if text := readText(t, stream, ReadLine); text != "" {
		t.Errorf("released buffer read as %q", text)
	}

	writeText(t, stream, "xy")
	if text := readText(t, stream, ReadAll); text != "xy" {
		t.Errorf("content after flush and write is %q", text)
	}
	if stream.Position() != 4 {
		t.Error("unexpected position after write:", stream.Position())
	}
}

// TestCopyToTruncation tests that a counted copy transfers leading bytes
// along with the mode and type.
func TestCopyToTruncation(t *testing.T) {
	source := New(nil)
	mode := ModeReadWrite
	if err := source.Open(&OpenParameters{Mode: &mode}); err != nil {
		t.Fatal("unable to open source:", err)
	}
	writeText(t, source, "abcdefghij")
	if source.Length() != 20 {
		t.Fatal("unexpected source length:", source.Length())
	}

	destination := newOpenStream(t)
	if err := destination.CopyTo(nil, CopyAll); err == nil {
		t.Fatal("copy to nil destination succeeded")
	}
	if err := source.CopyTo(destination, 10); err != nil {
		t.Fatal("unable to copy:", err)
	}
	if destination.Length() != 10 {
		t.Error("unexpected destination length:", destination.Length())
	}
	if destination.Mode() != source.Mode() || destination.Type() != source.Type() {
		t.Error("mode and type not copied")
	}
	if text := readText(t, destination, ReadAll); text != "abcde" {
		t.Errorf("destination content is %q", text)
	}
}

// TestCopyToAll tests full copies and their independence from the source.
func TestCopyToAll(t *testing.T) {
	source := newOpenStream(t)
	writeText(t, source, "abc")

	destination := newOpenStream(t)
	writeText(t, destination, "previous content")
	if err := source.CopyTo(destination, CopyAll); err != nil {
		t.Fatal("unable to copy:", err)
	}
	if destination.Position() > destination.Length() {
		t.Error("destination position beyond content:", destination.Position())
	}

	writeText(t, source, "def")
	source.Flush()
	if text := readText(t, destination, ReadAll); text != "abc" {
		t.Errorf("destination content is %q", text)
	}
}

// TestCopyToOddCount tests that a copy splitting a code unit leaves a
// consistent destination.
func TestCopyToOddCount(t *testing.T) {
	source := newOpenStream(t)
	writeText(t, source, "abc")

	destination := newOpenStream(t)
	if err := source.CopyTo(destination, 3); err != nil {
		t.Fatal("unable to copy:", err)
	}
	if destination.Length() != 3 {
		t.Error("unexpected destination length:", destination.Length())
	}
	if text := readText(t, destination, ReadAll); text != "a" {
		t.Errorf("destination content is %q", text)
	}
	writeText(t, destination, "z")
	if text := readText(t, destination, ReadAll); text != "az" {
		t.Errorf("destination content after write is %q", text)
	}
}

// TestCopyToValidation tests that invalid copies leave the destination
// untouched.
func TestCopyToValidation(t *testing.T) {
	source := newOpenStream(t)
	if err := source.SetMode(ModeReadWrite); err != nil {
		t.Fatal("unable to set mode:", err)
	}
	writeText(t, source, "abc")

	closed := New(nil)
	if err := source.CopyTo(closed, CopyAll); KindOf(err) != KindInvalidArgument {
		t.Error("copy to closed destination not rejected:", err)
	}
	if closed.Mode() != ModeReadOnly || closed.Length() != 0 {
		t.Error("rejected copy modified closed destination")
	}

	destination := newOpenStream(t)
	if err := source.CopyTo(destination, -2); KindOf(err) != KindInvalidArgument {
		t.Error("invalid copy count not rejected:", err)
	}
	if destination.Mode() != ModeReadOnly || destination.Length() != 0 {
		t.Error("rejected copy modified destination")
	}
}

// TestSetEOS tests truncation at the cursor.
func TestSetEOS(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abcdef")
	if stream.Length() != 12 {
		t.Fatal("unexpected length:", stream.Length())
	}
	setPosition(t, stream, 6)
	stream.SetEOS()
	if !stream.EOS() {
		t.Error("end of stream not set")
	}
	if text := readText(t, stream, ReadAll); text != "abc" {
		t.Errorf("content after truncation is %q", text)
	}
	if stream.Position() != 6 {
		t.Error("truncation moved position:", stream.Position())
	}

	writeText(t, stream, "x")
	if !stream.EOS() {
		t.Error("end of stream cleared by write")
	}
}

// TestSkipLine tests cursor movement past line separators.
func TestSkipLine(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "first\r\nsecond")
	setPosition(t, stream, 0)

	stream.SkipLine()
	if stream.Position() != 14 {
		t.Error("unexpected position after skip:", stream.Position())
	}
	if text := readText(t, stream, ReadLine); text != "second" {
		t.Errorf("line after skip is %q", text)
	}

	stream.SkipLine()
	if stream.Position() != stream.Length() {
		t.Error("skip at end moved position:", stream.Position())
	}
	if text := readText(t, stream, ReadAll); text != "first\r\nsecond" {
		t.Error("skip modified content")
	}
}

// TestSetPosition tests position validation.
func TestSetPosition(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")

	// Set up test cases.
	testCases := []struct {
		position int
		valid    bool
	}{
		{0, true},
		{2, true},
		{6, true},
		{-2, false},
		{3, false},
		{8, false},
	}

	// Process test cases.
	for _, testCase := range testCases {
		err := stream.SetPosition(testCase.position)
		if testCase.valid && err != nil {
			t.Error("valid position rejected:", testCase.position, err)
		} else if !testCase.valid && KindOf(err) != KindInvalidArgument {
			t.Error("invalid position not rejected:", testCase.position, err)
		}
	}
}

// TestLoadFromFile tests that file loads always fail.
func TestLoadFromFile(t *testing.T) {
	stream := New(nil)
	if err := stream.LoadFromFile("x"); KindOf(err) != KindInvalidOperation {
		t.Error("load on closed stream not rejected as invalid operation:", err)
	}
	if err := stream.Open(nil); err != nil {
		t.Fatal("unable to open stream:", err)
	}
	if err := stream.LoadFromFile("x"); KindOf(err) != KindResourceNotFound {
		t.Error("load on open stream did not report missing file:", err)
	}
}

// TestSaveToFileAndStat tests that the unsupported persistence entry points
// have no effect.
func TestSaveToFileAndStat(t *testing.T) {
	stream := newOpenStream(t)
	writeText(t, stream, "abc")
	stream.SaveToFile("out.txt", 2)
	stream.Stat()
	if text := readText(t, stream, ReadAll); text != "abc" || stream.State() != StateOpen {
		t.Error("unsupported operations modified stream")
	}
}
