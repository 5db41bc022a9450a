package identifier

import (
	"crypto/rand"
	"strings"

	"github.com/eknkc/basex"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// PrefixStream is the prefix used for stream object identifiers.
	PrefixStream = "strm_"

	// requiredPrefixLength is the required length for identifier prefixes,
	// excluding the trailing underscore.
	requiredPrefixLength = 4
	// collisionResistantLength is the number of random bytes needed to ensure
	// collision-resistance in an identifier.
	collisionResistantLength = 16
	// targetBase62Length is the length of a Base62-encoded random value once
	// padded. It is ceil(collisionResistantLength*8*ln(2)/ln(62)).
	targetBase62Length = 22
	// base62Alphabet is the alphabet used for Base62 encoding.
	base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// base62 is the Base62 encoder. It is safe for concurrent use.
var base62 *basex.Encoding

func init() {
	// Initialize the Base62 encoder.
	if encoding, err := basex.NewEncoding(base62Alphabet); err != nil {
		panic("unable to initialize Base62 encoder")
	} else {
		base62 = encoding
	}
}

// isValidPrefix determines whether or not a prefix (including its trailing
// underscore) is valid.
func isValidPrefix(prefix string) bool {
	if len(prefix) != requiredPrefixLength+1 || prefix[requiredPrefixLength] != '_' {
		return false
	}
	for _, r := range prefix[:requiredPrefixLength] {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// New generates a new collision-resistant identifier with the specified
// prefix. The prefix must consist of four lowercase letters followed by an
// underscore.
func New(prefix string) (string, error) {
	// Validate the prefix.
	if !isValidPrefix(prefix) {
		return "", errors.Errorf("invalid identifier prefix: %q", prefix)
	}

	// Create the random value.
	value := make([]byte, collisionResistantLength)
	if _, err := rand.Read(value); err != nil {
		return "", errors.Wrap(err, "unable to read random data")
	}

	// Encode the random value and left-pad it to the target length.
	encoded := base62.Encode(value)
	if padding := targetBase62Length - len(encoded); padding > 0 {
		encoded = strings.Repeat(base62Alphabet[:1], padding) + encoded
	}

	// Done.
	return prefix + encoded, nil
}

// IsValid determines whether or not a string is a valid identifier. Canonical
// lowercase UUIDs are also accepted.
func IsValid(value string) bool {
	// Check for a UUID.
	if len(value) == 36 {
		_, err := uuid.Parse(value)
		return err == nil && strings.ToLower(value) == value
	}

	// Check the length and prefix.
	if len(value) != requiredPrefixLength+1+targetBase62Length {
		return false
	} else if !isValidPrefix(value[:requiredPrefixLength+1]) {
		return false
	}

	// Check the encoded value.
	for _, r := range value[requiredPrefixLength+1:] {
		if !strings.ContainsRune(base62Alphabet, r) {
			return false
		}
	}
	return true
}
