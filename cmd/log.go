package cmd

import (
	"io"
	"log"

	"github.com/scriptemu/adodbstream/pkg/adodbstream"
)

func init() {
	// Silence the default logger unless debugging is enabled, in which case
	// host and stream logs are written to standard error.
	if !adodbstream.DebugEnabled {
		log.SetOutput(io.Discard)
	}
}
