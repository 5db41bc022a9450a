package configuration

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/adodb"
	"github.com/scriptemu/adodbstream/pkg/encoding"
	"github.com/scriptemu/adodbstream/pkg/logging"
)

const (
	// DefaultMaximumObjects is the default limit on live host objects.
	DefaultMaximumObjects = 256
)

// Stream holds the property defaults applied to new stream objects.
type Stream struct {
	// Charset is the default charset label.
	Charset string `yaml:"charset" toml:"charset"`
	// LineSeparator is the default line separator name.
	LineSeparator string `yaml:"lineSeparator" toml:"lineSeparator"`
	// Mode is the default access mode name.
	Mode string `yaml:"mode" toml:"mode"`
	// Type is the default content type name.
	Type string `yaml:"type" toml:"type"`
}

// Host holds host settings.
type Host struct {
	// MaximumObjects is the maximum number of live objects. Zero indicates no
	// limit.
	MaximumObjects int `yaml:"maximumObjects" toml:"maximumObjects"`
	// MaximumBytes is the maximum total content size of live objects. Zero
	// indicates no limit.
	MaximumBytes ByteSize `yaml:"maximumBytes" toml:"maximumBytes"`
	// LogLevel is the host log level name. If empty, the root logger level is
	// used.
	LogLevel string `yaml:"logLevel" toml:"logLevel"`
}

// Configuration is the host configuration.
type Configuration struct {
	// Stream holds stream defaults.
	Stream Stream `yaml:"stream" toml:"stream"`
	// Host holds host settings.
	Host Host `yaml:"host" toml:"host"`
}

// Default returns the default configuration.
func Default() *Configuration {
	return &Configuration{
		Stream: Stream{
			Charset:       adodb.DefaultCharset,
			LineSeparator: adodb.LineSeparatorCRLF.String(),
			Mode:          adodb.ModeReadOnly.String(),
			Type:          adodb.ContentTypeText.String(),
		},
		Host: Host{
			MaximumObjects: DefaultMaximumObjects,
		},
	}
}

// Load loads a configuration from the specified path, layering it on top of
// the default configuration. Paths ending in ".toml" are decoded as TOML and
// all others as YAML. The result is validated.
func Load(path string) (*Configuration, error) {
	// Start from the defaults so that omitted settings retain them.
	result := Default()

	// Decode the file.
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = encoding.LoadAndUnmarshalTOML(path, result)
	} else {
		err = encoding.LoadAndUnmarshalYAML(path, result)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}

	// Validate the result.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return result, nil
}

// EnsureValid ensures that the configuration is valid.
func (c *Configuration) EnsureValid() error {
	if _, err := c.Defaults(); err != nil {
		return err
	}
	if c.Host.MaximumObjects < 0 {
		return errors.New("negative maximum object count")
	}
	if c.Host.LogLevel != "" {
		if _, ok := logging.NameToLevel(c.Host.LogLevel); !ok {
			return errors.Errorf("unknown log level: %s", c.Host.LogLevel)
		}
	}
	return nil
}

// Defaults are the parsed stream property defaults.
type Defaults struct {
	// Charset is the charset label.
	Charset string
	// LineSeparator is the line separator.
	LineSeparator adodb.LineSeparator
	// Mode is the access mode.
	Mode adodb.Mode
	// Type is the content type.
	Type adodb.ContentType
}

// Defaults parses the stream property defaults.
func (c *Configuration) Defaults() (Defaults, error) {
	result := Defaults{Charset: c.Stream.Charset}
	var err error
	if result.LineSeparator, err = adodb.ParseLineSeparator(c.Stream.LineSeparator); err != nil {
		return Defaults{}, errors.Wrap(err, "invalid default line separator")
	}
	if result.Mode, err = adodb.ParseMode(c.Stream.Mode); err != nil {
		return Defaults{}, errors.Wrap(err, "invalid default mode")
	}
	if result.Type, err = adodb.ParseContentType(c.Stream.Type); err != nil {
		return Defaults{}, errors.Wrap(err, "invalid default type")
	}
	return result, nil
}

// Apply applies the defaults to a stream.
func (d Defaults) Apply(stream *adodb.Stream) error {
	stream.SetCharset(d.Charset)
	if err := stream.SetLineSeparator(d.LineSeparator); err != nil {
		return err
	}
	if err := stream.SetMode(d.Mode); err != nil {
		return err
	}
	return stream.SetType(d.Type)
}

// Logger returns the logger to use for the host, derived from the specified
// parent. If a log level is configured, it replaces the parent's level.
func (c *Configuration) Logger(parent *logging.Logger) *logging.Logger {
	if level, ok := logging.NameToLevel(c.Host.LogLevel); ok {
		return logging.NewLogger(level).Sublogger("host")
	}
	return parent.Sublogger("host")
}
