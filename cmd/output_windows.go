package cmd

const (
	// statusLineFormat is the format string to use for status line printing.
	// Content is limited to 79 characters because carriage return wipes don't
	// work on Windows consoles once the last column has been written.
	statusLineFormat = "\r%-79.79s"
	// statusLineClearFormat is the format string to use for printing an empty
	// string to clear the status line. It returns the cursor to the beginning
	// of the line.
	statusLineClearFormat = statusLineFormat + "\r"
)
