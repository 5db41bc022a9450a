package adodbstream

import (
	"os"
)

// DebugEnabled controls whether or not debugging is enabled. It is set
// automatically based on the ADODBSTREAM_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("ADODBSTREAM_DEBUG") == "1"
}
