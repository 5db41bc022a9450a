//go:build !windows

package cmd

const (
	// statusLineFormat is the format string to use for status line printing.
	// Messages are truncated and padded so that the printed content is exactly
	// 80 characters, which overwrites all previous content.
	statusLineFormat = "\r%-80.80s"
	// statusLineClearFormat is the format string to use for printing an empty
	// string to clear the status line. It returns the cursor to the beginning
	// of the line.
	statusLineClearFormat = statusLineFormat + "\r"
)
