package cmd

import (
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

// Mainify is a small utility that wraps a non-standard Cobra entry point (one
// returning an error) and generates a standard Cobra entry point. It's useful
// for entry points to be able to rely on defer-based cleanup, which doesn't
// occur if the entry point terminates the process. This method allows the entry
// point to indicate an error while still performing cleanup.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// DisallowArguments is a Cobra argument validator that rejects all positional
// arguments. Unlike cobra.NoArgs, it doesn't treat arguments as unknown
// subcommands.
func DisallowArguments(_ *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New("command does not accept arguments")
	}
	return nil
}

// RequireArguments is a Cobra argument validator that requires at least one
// positional argument.
func RequireArguments(_ *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errors.New("at least one argument is required")
	}
	return nil
}
