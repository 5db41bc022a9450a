package host

import (
	"sort"
	"strings"

	"github.com/golang/groupcache/lru"
	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/adodb"
	"github.com/scriptemu/adodbstream/pkg/configuration"
	"github.com/scriptemu/adodbstream/pkg/identifier"
	"github.com/scriptemu/adodbstream/pkg/logging"
)

const (
	// ProgIDStream is the programmatic identifier of the stream object.
	ProgIDStream = "ADODB.Stream"
)

var (
	// ErrUnknownProgID is returned when creating an object with an
	// unsupported programmatic identifier.
	ErrUnknownProgID = errors.New("automation server can't create object")
	// ErrUnknownObject is returned when an identifier doesn't refer to a live
	// object.
	ErrUnknownObject = errors.New("object required")
	// ErrUnknownMember is returned for unknown methods and properties.
	ErrUnknownMember = errors.New("object doesn't support this property or method")
)

// Host creates stream objects on behalf of a script interpreter and mediates
// every call the interpreter makes on them. The number of live objects and the
// content they hold are bounded, with least recently used objects closed and
// discarded when a bound is exceeded. Host is not safe for concurrent use.
type Host struct {
	// logger is the underlying logger.
	logger *logging.Logger
	// defaults are the property defaults applied to new streams.
	defaults configuration.Defaults
	// recency tracks object use and enforces the object limit.
	recency *lru.Cache
	// maximumBytes is the limit on content held by live objects. Zero
	// indicates no limit.
	maximumBytes uint64
	// objects maps identifiers to live objects.
	objects map[string]*adodb.Stream
}

// New creates a new host. If configuration is nil, the default configuration
// is used.
func New(config *configuration.Configuration, logger *logging.Logger) (*Host, error) {
	// Use the default configuration if none was provided.
	if config == nil {
		config = configuration.Default()
	}

	// Parse stream defaults.
	defaults, err := config.Defaults()
	if err != nil {
		return nil, errors.Wrap(err, "invalid stream defaults")
	} else if config.Host.MaximumObjects < 0 {
		return nil, errors.New("negative maximum object count")
	}

	// Create the host.
	host := &Host{
		logger:       config.Logger(logger),
		defaults:     defaults,
		recency:      lru.New(config.Host.MaximumObjects),
		maximumBytes: uint64(config.Host.MaximumBytes),
		objects:      make(map[string]*adodb.Stream),
	}

	// Close objects as they leave the registry, whether through release,
	// teardown, or eviction.
	host.recency.OnEvicted = func(key lru.Key, value interface{}) {
		id := key.(string)
		value.(*adodb.Stream).Close()
		delete(host.objects, id)
		host.logger.Infof("Released %s", id)
	}

	// Success.
	return host, nil
}

// CreateObject creates a new object for the specified programmatic
// identifier (matched without regard to case) and returns its identifier.
func (h *Host) CreateObject(progID string) (string, error) {
	// Validate the programmatic identifier.
	if !strings.EqualFold(progID, ProgIDStream) {
		return "", errors.Wrapf(ErrUnknownProgID, "unsupported ProgID %q", progID)
	}

	// Generate an identifier.
	id, err := identifier.New(identifier.PrefixStream)
	if err != nil {
		return "", errors.Wrap(err, "unable to generate object identifier")
	}

	// Create the stream and apply defaults.
	stream := adodb.New(h.logger.Sublogger(id))
	if err := h.defaults.Apply(stream); err != nil {
		return "", errors.Wrap(err, "unable to apply stream defaults")
	}

	// Register the stream. Registration may evict another object.
	h.objects[id] = stream
	h.recency.Add(id, stream)
	h.logger.Infof("Created %s as %s", ProgIDStream, id)

	// Success.
	return id, nil
}

// Object returns the live object with the specified identifier and marks it
// as recently used.
func (h *Host) Object(id string) (*adodb.Stream, error) {
	if !identifier.IsValid(id) {
		return nil, errors.Wrapf(ErrUnknownObject, "malformed identifier %q", id)
	} else if value, ok := h.recency.Get(id); ok {
		return value.(*adodb.Stream), nil
	}
	return nil, errors.Wrapf(ErrUnknownObject, "no object with identifier %q", id)
}

// trim evicts least recently used objects until the content held by live
// objects fits within the byte limit. The most recently used object is never
// evicted.
func (h *Host) trim() {
	if h.maximumBytes == 0 {
		return
	}
	for h.recency.Len() > 1 && h.BytesHeld() > h.maximumBytes {
		h.logger.Warnf("Content exceeds %d bytes, evicting least recently used object", h.maximumBytes)
		h.recency.RemoveOldest()
	}
}

// Release closes and discards the object with the specified identifier.
func (h *Host) Release(id string) error {
	if _, ok := h.objects[id]; !ok {
		return errors.Wrapf(ErrUnknownObject, "no object with identifier %q", id)
	}
	h.recency.Remove(id)
	return nil
}

// Teardown closes and discards all live objects.
func (h *Host) Teardown() {
	h.recency.Clear()
}

// Count returns the number of live objects.
func (h *Host) Count() int {
	return len(h.objects)
}

// Identifiers returns the identifiers of all live objects in sorted order.
func (h *Host) Identifiers() []string {
	result := make([]string, 0, len(h.objects))
	for id := range h.objects {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// BytesHeld returns the total content length of all live objects.
func (h *Host) BytesHeld() uint64 {
	var total uint64
	for _, stream := range h.objects {
		total += uint64(stream.Length())
	}
	return total
}
