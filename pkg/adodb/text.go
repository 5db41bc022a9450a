package adodb

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"golang.org/x/text/encoding/unicode"
)

const (
	// byteOrderMark is the code unit that prefixes stream content.
	byteOrderMark = 0xFEFF
	// unitSize is the size of a code unit in bytes.
	unitSize = 2
)

// storageEncoding is the code unit encoding used for stream storage. Byte order
// marks are handled explicitly by the stream, so the encoding ignores them.
var storageEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeText converts text to code units.
func encodeText(text string) ([]uint16, error) {
	encoded, err := storageEncoding.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode text")
	}
	return unitsFromBytes(encoded), nil
}

// decodeText converts code units to text. Unpaired surrogates decode to the
// Unicode replacement character.
func decodeText(units []uint16) (string, error) {
	decoded, err := storageEncoding.NewDecoder().Bytes(bytesFromUnits(units))
	if err != nil {
		return "", errors.Wrap(err, "unable to decode text")
	}
	return string(decoded), nil
}

// unitsFromBytes converts little-endian storage to code units. A trailing odd
// byte doesn't form a code unit and is ignored.
func unitsFromBytes(data []byte) []uint16 {
	units := make([]uint16, len(data)/unitSize)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[i*unitSize:])
	}
	return units
}

// bytesFromUnits converts code units to little-endian storage.
func bytesFromUnits(units []uint16) []byte {
	data := make([]byte, len(units)*unitSize)
	for i, u := range units {
		binary.LittleEndian.PutUint16(data[i*unitSize:], u)
	}
	return data
}

// indexUnits returns the index of the first occurrence of needle in haystack
// at or after from, or -1 if there is none.
func indexUnits(haystack, needle []uint16, from int) int {
	if len(needle) == 0 {
		return from
	}
search:
	for i := from; i+len(needle) <= len(haystack); i++ {
		for j, u := range needle {
			if haystack[i+j] != u {
				continue search
			}
		}
		return i
	}
	return -1
}
