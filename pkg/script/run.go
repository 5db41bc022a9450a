package script

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/scriptemu/adodbstream/pkg/adodb"
	"github.com/scriptemu/adodbstream/pkg/host"
)

// Outcome describes the execution of a single step.
type Outcome struct {
	// Index is the one-based step index.
	Index int
	// Step is the step that was executed.
	Step *Step
	// Result is the value produced by the step, if any.
	Result interface{}
	// Err is the error returned by the operation, if any.
	Err error
	// Failure describes why the step failed, or is nil if it passed.
	Failure error
}

// Observer receives step outcomes as a script executes.
type Observer interface {
	// StepCompleted is invoked after each executed step.
	StepCompleted(outcome *Outcome)
}

// runner executes a single script.
type runner struct {
	// host is the host on which objects are created.
	host *host.Host
	// aliases maps aliases to object identifiers.
	aliases map[string]string
}

// identifier returns the object identifier bound to an alias.
func (r *runner) identifier(alias string) (string, error) {
	if id, ok := r.aliases[alias]; ok {
		return id, nil
	}
	return "", errors.Errorf("unknown alias %q", alias)
}

// resolve replaces alias references with object identifiers.
func (r *runner) resolve(value interface{}) (interface{}, error) {
	if text, ok := value.(string); ok && strings.HasPrefix(text, ReferencePrefix) {
		return r.identifier(strings.TrimPrefix(text, ReferencePrefix))
	}
	return value, nil
}

// execute performs a step, recording the operation's result and error in the
// outcome. Errors in the script itself, such as an unknown alias, are
// returned.
func (r *runner) execute(step *Step, outcome *Outcome) error {
	switch {
	case step.Create != "":
		if _, ok := r.aliases[step.Create]; ok {
			return errors.Errorf("alias %q already bound", step.Create)
		}
		progID := step.ProgID
		if progID == "" {
			progID = host.ProgIDStream
		}
		id, err := r.host.CreateObject(progID)
		if err == nil {
			r.aliases[step.Create] = id
			outcome.Result = id
		}
		outcome.Err = err
	case step.Call != "":
		alias, method, _ := splitMember(step.Call)
		id, err := r.identifier(alias)
		if err != nil {
			return err
		}
		arguments := make([]interface{}, len(step.Args))
		for i, argument := range step.Args {
			if arguments[i], err = r.resolve(argument); err != nil {
				return err
			}
		}
		outcome.Result, outcome.Err = r.host.Call(id, method, arguments...)
	case step.Get != "":
		alias, property, _ := splitMember(step.Get)
		id, err := r.identifier(alias)
		if err != nil {
			return err
		}
		outcome.Result, outcome.Err = r.host.Get(id, property)
	case step.Set != "":
		alias, property, _ := splitMember(step.Set)
		id, err := r.identifier(alias)
		if err != nil {
			return err
		}
		value, err := r.resolve(step.Value)
		if err != nil {
			return err
		}
		outcome.Err = r.host.Set(id, property, value)
	default:
		id, err := r.identifier(step.Release)
		if err != nil {
			return err
		}
		delete(r.aliases, step.Release)
		outcome.Err = r.host.Release(id)
	}
	return nil
}

// check compares a step's result and error against its expectations.
func check(step *Step, result interface{}, err error) error {
	// Handle steps that expect an error.
	if step.Error != "" {
		if err == nil {
			return errors.Errorf("expected %s error, got result %s", step.Error, formatValue(result))
		} else if step.Error != ErrorAny {
			if kind := adodb.KindOf(err); kind.String() != step.Error {
				return errors.Errorf("expected %s error, got %s error: %v", step.Error, kind, err)
			}
		}
		return nil
	}

	// Handle steps that expect success.
	if err != nil {
		return errors.Wrap(err, "unexpected error")
	} else if step.Expect != nil {
		var expected interface{}
		if err := step.Expect.Decode(&expected); err != nil {
			return errors.Wrap(err, "unable to decode expectation")
		}
		if fmt.Sprint(expected) != fmt.Sprint(result) {
			return errors.Errorf("expected %s, got %s", formatValue(expected), formatValue(result))
		}
	}
	return nil
}

// Run executes a script against a host, reporting each step to the observer
// (which may be nil). Execution stops at the first failed step. Objects bound
// to aliases are released when execution ends.
func Run(h *host.Host, script *Script, observer Observer) error {
	// Create the runner and ensure that objects are released.
	r := &runner{host: h, aliases: make(map[string]string)}
	defer func() {
		for _, id := range r.aliases {
			h.Release(id)
		}
	}()

	// Execute steps.
	for i, step := range script.Steps {
		outcome := &Outcome{Index: i + 1, Step: step}
		if err := r.execute(step, outcome); err != nil {
			outcome.Failure = err
		} else {
			outcome.Failure = check(step, outcome.Result, outcome.Err)
		}
		if observer != nil {
			observer.StepCompleted(outcome)
		}
		if outcome.Failure != nil {
			return errors.Wrapf(outcome.Failure, "step %d (%s) failed", outcome.Index, step.Description())
		}
	}

	// Success.
	return nil
}
