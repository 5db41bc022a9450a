package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"gopkg.in/yaml.v3"

	"github.com/scriptemu/adodbstream/pkg/adodb"
	"github.com/scriptemu/adodbstream/pkg/encoding"
	"github.com/scriptemu/adodbstream/pkg/host"
)

const (
	// ErrorAny is the error expectation that matches any failure.
	ErrorAny = "any"
	// ReferencePrefix marks a string argument or value that refers to an
	// alias. It's replaced by the alias' object identifier.
	ReferencePrefix = "@"
)

// Step is a single script step. Exactly one of Create, Call, Get, Set, and
// Release must be specified.
type Step struct {
	// Create is the alias under which to create an object.
	Create string `yaml:"create"`
	// ProgID is the programmatic identifier for Create. If empty, a stream is
	// created.
	ProgID string `yaml:"progID"`
	// Call is the method to call, in <alias>.<method> format.
	Call string `yaml:"call"`
	// Args are the arguments for Call.
	Args []interface{} `yaml:"args"`
	// Get is the property to read, in <alias>.<property> format.
	Get string `yaml:"get"`
	// Set is the property to assign, in <alias>.<property> format.
	Set string `yaml:"set"`
	// Value is the value to assign for Set.
	Value interface{} `yaml:"value"`
	// Release is the alias of the object to release.
	Release string `yaml:"release"`
	// Expect is the expected result, compared by its formatted value.
	Expect *yaml.Node `yaml:"expect"`
	// Error is the expected error kind, or ErrorAny.
	Error string `yaml:"error"`
}

// splitMember splits an <alias>.<member> target.
func splitMember(target string) (string, string, error) {
	index := strings.IndexByte(target, '.')
	if index < 1 || index == len(target)-1 {
		return "", "", errors.Errorf("invalid member target %q", target)
	}
	return target[:index], target[index+1:], nil
}

// EnsureValid ensures that the step is valid.
func (s *Step) EnsureValid() error {
	// Count actions.
	var actions int
	for _, action := range []string{s.Create, s.Call, s.Get, s.Set, s.Release} {
		if action != "" {
			actions++
		}
	}
	if actions != 1 {
		return errors.New("step must specify exactly one of create, call, get, set, or release")
	}

	// Validate action-specific fields.
	if s.ProgID != "" && s.Create == "" {
		return errors.New("progID specified without create")
	} else if s.Args != nil && s.Call == "" {
		return errors.New("args specified without call")
	} else if s.Value != nil && s.Set == "" {
		return errors.New("value specified without set")
	}
	for _, target := range []string{s.Call, s.Get, s.Set} {
		if target != "" {
			if _, _, err := splitMember(target); err != nil {
				return err
			}
		}
	}

	// Validate expectations.
	if s.Expect != nil && s.Error != "" {
		return errors.New("step can't expect both a result and an error")
	}
	switch s.Error {
	case "", ErrorAny,
		adodb.KindInvalidArgument.String(),
		adodb.KindInvalidOperation.String(),
		adodb.KindResourceNotFound.String():
	default:
		return errors.Errorf("unknown error kind %q", s.Error)
	}

	// Success.
	return nil
}

// Description returns a human-readable description of the step.
func (s *Step) Description() string {
	switch {
	case s.Create != "":
		progID := s.ProgID
		if progID == "" {
			progID = host.ProgIDStream
		}
		return fmt.Sprintf("%s = CreateObject(%q)", s.Create, progID)
	case s.Call != "":
		arguments := make([]string, len(s.Args))
		for i, argument := range s.Args {
			arguments[i] = formatValue(argument)
		}
		return fmt.Sprintf("%s(%s)", s.Call, strings.Join(arguments, ", "))
	case s.Get != "":
		return s.Get
	case s.Set != "":
		return fmt.Sprintf("%s = %s", s.Set, formatValue(s.Value))
	default:
		return fmt.Sprintf("release %s", s.Release)
	}
}

// formatValue formats a script value for descriptions.
func formatValue(value interface{}) string {
	if text, ok := value.(string); ok {
		return fmt.Sprintf("%q", text)
	}
	return fmt.Sprint(value)
}

// Script is an automation script.
type Script struct {
	// Name is the script name.
	Name string `yaml:"name"`
	// Steps are the script steps.
	Steps []*Step `yaml:"steps"`
}

// EnsureValid ensures that the script is valid.
func (s *Script) EnsureValid() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	for i, step := range s.Steps {
		if step == nil {
			return errors.Errorf("step %d is empty", i+1)
		} else if err := step.EnsureValid(); err != nil {
			return errors.Wrapf(err, "invalid step %d", i+1)
		}
	}
	return nil
}

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	// Decode the script.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	result := &Script{}
	if err := decoder.Decode(result); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty script")
		}
		return nil, errors.Wrap(err, "unable to decode script")
	}

	// Validate the script.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid script")
	}

	// Success.
	return result, nil
}

// Load loads and parses the script at the specified path. If the script
// doesn't specify a name, the path is used.
func Load(path string) (*Script, error) {
	var result *Script
	err := encoding.LoadAndUnmarshal(path, func(data []byte) error {
		var err error
		result, err = Parse(data)
		return err
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("script %q does not exist", path)
		}
		return nil, err
	}
	if result.Name == "" {
		result.Name = path
	}
	return result, nil
}
