package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a byte count that can be specified either numerically or in a
// human-friendly format such as "64 KiB" or "1 MB".
type ByteSize uint64

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText. It's used
// for string values in both YAML and TOML files.
func (s *ByteSize) UnmarshalText(text []byte) error {
	value, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}

// String returns a human-friendly representation of the byte count.
func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}
