package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// StatusLinePrinter prints a dynamically updating status line to standard
// output. It supports colorized printing. Printing has no effect if standard
// output isn't a terminal, so that redirected output contains only complete
// lines.
type StatusLinePrinter struct {
	// disabled indicates that standard output isn't a terminal.
	disabled bool
	// nonEmpty indicates whether or not the printer has printed any non-empty
	// content to the status line.
	nonEmpty bool
}

// NewStatusLinePrinter creates a new status line printer.
func NewStatusLinePrinter() *StatusLinePrinter {
	return &StatusLinePrinter{disabled: !IsTerminal(os.Stdout)}
}

// Print prints a message to the status line, overwriting any existing content.
// Color escape sequences are supported. Messages are truncated and padded to a
// platform-dependent width.
func (p *StatusLinePrinter) Print(message string) {
	if p.disabled {
		return
	}
	fmt.Fprintf(color.Output, statusLineFormat, message)
	p.nonEmpty = true
}

// Clear clears any content on the status line and moves the cursor back to the
// beginning of the line.
func (p *StatusLinePrinter) Clear() {
	if p.disabled || !p.nonEmpty {
		return
	}
	fmt.Fprintf(color.Output, statusLineClearFormat, "")
	p.nonEmpty = false
}
