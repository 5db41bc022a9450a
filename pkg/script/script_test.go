package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scriptemu/adodbstream/pkg/host"
)

// lineScript is a valid script that exercises line-oriented reading.
const lineScript = `
name: lines
steps:
  - create: s
  - call: s.Open
  - set: s.LineSeparator
    value: 10
  - call: s.WriteText
    args: ["a"]
  - call: s.WriteText
    args: ["b", 1]
  - call: s.WriteText
    args: ["c"]
  - set: s.Position
    value: 0
  - call: s.ReadText
    args: [-2]
    expect: "ab\n"
  - call: s.ReadText
    args: [-2]
    expect: c
  - get: s.Position
    expect: 8
  - get: s.EOS
    expect: false
  - call: s.ReadText
    args: [-3]
    error: invalid-argument
  - create: d
  - call: s.CopyTo
    args: ["@d", 4]
    error: invalid-argument
  - call: d.Open
  - call: s.CopyTo
    args: ["@d", 4]
  - call: d.ReadText
    expect: ab
  - call: d.LoadFromFile
    args: [missing.txt]
    error: resource-not-found
  - release: d
`

// recorder is an Observer that records outcomes.
type recorder struct {
	outcomes []*Outcome
}

// StepCompleted implements Observer.StepCompleted.
func (r *recorder) StepCompleted(outcome *Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

// newHost creates a host for testing.
func newHost(t *testing.T) *host.Host {
	h, err := host.New(nil, nil)
	if err != nil {
		t.Fatal("unable to create host:", err)
	}
	return h
}

// TestParseInvalid tests that invalid scripts are rejected.
func TestParseInvalid(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		description string
		data        string
	}{
		{"empty", ""},
		{"no steps", "name: x\n"},
		{"unknown field", "steps:\n  - create: s\n    color: red\n"},
		{"no action", "steps:\n  - expect: 1\n"},
		{"two actions", "steps:\n  - create: s\n    release: s\n"},
		{"stray args", "steps:\n  - get: s.mode\n    args: [1]\n"},
		{"stray value", "steps:\n  - call: s.open\n    value: 1\n"},
		{"stray progID", "steps:\n  - release: s\n    progID: x\n"},
		{"bad target", "steps:\n  - call: open\n"},
		{"trailing dot", "steps:\n  - get: s.\n"},
		{"unknown error kind", "steps:\n  - call: s.open\n    error: boom\n"},
		{"both expectations", "steps:\n  - get: s.mode\n    expect: 1\n    error: any\n"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if _, err := Parse([]byte(testCase.data)); err == nil {
			t.Errorf("%s: invalid script accepted", testCase.description)
		}
	}
}

// TestRun tests successful script execution.
func TestRun(t *testing.T) {
	script, err := Parse([]byte(lineScript))
	if err != nil {
		t.Fatal("unable to parse script:", err)
	}
	h := newHost(t)
	observer := &recorder{}
	if err := Run(h, script, observer); err != nil {
		t.Fatal("script failed:", err)
	}
	if len(observer.outcomes) != len(script.Steps) {
		t.Fatal("unexpected outcome count:", len(observer.outcomes))
	}
	for _, outcome := range observer.outcomes {
		if outcome.Failure != nil {
			t.Errorf("step %d failed: %v", outcome.Index, outcome.Failure)
		}
	}
	if h.Count() != 0 {
		t.Error("objects remain after script:", h.Count())
	}
}

// TestRunFailure tests that execution stops at the first failed step.
func TestRunFailure(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		description string
		data        string
		failedStep  int
	}{
		{"mismatch", "steps:\n  - create: s\n  - get: s.mode\n    expect: 3\n  - get: s.mode\n", 2},
		{"unexpected error", "steps:\n  - create: s\n  - call: s.readtext\n    args: [-5]\n  - get: s.mode\n", 2},
		{"missing error", "steps:\n  - create: s\n  - call: s.open\n    error: any\n", 2},
		{"wrong kind", "steps:\n  - create: s\n  - call: s.write\n    args: [x]\n    error: invalid-argument\n", 2},
		{"unknown alias", "steps:\n  - get: s.mode\n", 1},
		{"unknown reference", "steps:\n  - create: s\n  - call: s.copyto\n    args: [\"@t\"]\n", 2},
		{"rebound alias", "steps:\n  - create: s\n  - create: s\n", 2},
		{"unknown ProgID", "steps:\n  - create: s\n    progID: Scripting.Dictionary\n", 1},
	}

	// Process test cases.
	for _, testCase := range testCases {
		script, err := Parse([]byte(testCase.data))
		if err != nil {
			t.Errorf("%s: unable to parse script: %v", testCase.description, err)
			continue
		}
		h := newHost(t)
		observer := &recorder{}
		if err := Run(h, script, observer); err == nil {
			t.Errorf("%s: script succeeded", testCase.description)
		}
		if len(observer.outcomes) != testCase.failedStep {
			t.Errorf("%s: execution stopped after %d steps", testCase.description, len(observer.outcomes))
		} else if observer.outcomes[testCase.failedStep-1].Failure == nil {
			t.Errorf("%s: failed step not reported", testCase.description)
		}
		if h.Count() != 0 {
			t.Errorf("%s: objects remain after script", testCase.description)
		}
	}
}

// TestRunNilObserver tests execution without an observer.
func TestRunNilObserver(t *testing.T) {
	script, err := Parse([]byte("steps:\n  - create: s\n  - get: s.type\n    expect: 2\n"))
	if err != nil {
		t.Fatal("unable to parse script:", err)
	}
	if err := Run(newHost(t), script, nil); err != nil {
		t.Error("script failed:", err)
	}
}

// TestDescription tests step descriptions.
func TestDescription(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		step     *Step
		expected string
	}{
		{&Step{Create: "s"}, `s = CreateObject("ADODB.Stream")`},
		{&Step{Call: "s.WriteText", Args: []interface{}{"a", 1}}, `s.WriteText("a", 1)`},
		{&Step{Call: "s.Close"}, "s.Close()"},
		{&Step{Get: "s.Mode"}, "s.Mode"},
		{&Step{Set: "s.Position", Value: 0}, "s.Position = 0"},
		{&Step{Release: "s"}, "release s"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if description := testCase.step.Description(); description != testCase.expected {
			t.Errorf("unexpected description: %s != %s", description, testCase.expected)
		}
	}
}

// TestLoad tests loading scripts from disk.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.yaml")
	data := strings.Replace(lineScript, "name: lines\n", "", 1)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal("unable to write script:", err)
	}
	script, err := Load(path)
	if err != nil {
		t.Fatal("unable to load script:", err)
	} else if script.Name != path {
		t.Error("script name not defaulted to path:", script.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing script loaded")
	}
}
