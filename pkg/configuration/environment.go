package configuration

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// EnvironmentCharset overrides the default charset.
	EnvironmentCharset = "ADODBSTREAM_CHARSET"
	// EnvironmentLineSeparator overrides the default line separator.
	EnvironmentLineSeparator = "ADODBSTREAM_LINE_SEPARATOR"
	// EnvironmentMaximumObjects overrides the maximum object count.
	EnvironmentMaximumObjects = "ADODBSTREAM_MAXIMUM_OBJECTS"
	// EnvironmentMaximumBytes overrides the maximum total content size.
	EnvironmentMaximumBytes = "ADODBSTREAM_MAXIMUM_BYTES"
)

// LoadEnvironment loads a "dotenv" environment variable file from disk and
// updates it to include variables from the current process' environment (with
// the current process' environment taking precedence). If path is empty or
// the file doesn't exist, the result is the current process' environment.
func LoadEnvironment(path string) (map[string]string, error) {
	// Load the environment file (if specified and present).
	var environment map[string]string
	if path != "" {
		var err error
		environment, err = godotenv.Read(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "unable to load environment file (%s)", path)
		}
	}

	// Grab the environment from the OS.
	osEnvironment := os.Environ()

	// If the environment wasn't allocated, then do so now.
	if environment == nil {
		environment = make(map[string]string, len(osEnvironment))
	}

	// Add environment variables from the OS.
	for _, specification := range osEnvironment {
		keyValue := strings.SplitN(specification, "=", 2)
		if len(keyValue) != 2 {
			return nil, errors.Errorf("invalid OS environment variable specification: %s", specification)
		}
		environment[keyValue[0]] = keyValue[1]
	}

	// Success.
	return environment, nil
}

// ApplyEnvironment overrides settings from environment variables and
// revalidates the configuration.
func (c *Configuration) ApplyEnvironment(environment map[string]string) error {
	if value, ok := environment[EnvironmentCharset]; ok && value != "" {
		c.Stream.Charset = value
	}
	if value, ok := environment[EnvironmentLineSeparator]; ok && value != "" {
		c.Stream.LineSeparator = strings.ToLower(value)
	}
	if value, ok := environment[EnvironmentMaximumObjects]; ok && value != "" {
		maximum, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s value", EnvironmentMaximumObjects)
		}
		c.Host.MaximumObjects = maximum
	}
	if value, ok := environment[EnvironmentMaximumBytes]; ok && value != "" {
		var maximum ByteSize
		if err := maximum.UnmarshalText([]byte(value)); err != nil {
			return errors.Wrapf(err, "invalid %s value", EnvironmentMaximumBytes)
		}
		c.Host.MaximumBytes = maximum
	}
	return c.EnsureValid()
}
