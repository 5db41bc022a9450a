package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/fatih/color"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/scriptemu/adodbstream/cmd"
	"github.com/scriptemu/adodbstream/pkg/configuration"
	"github.com/scriptemu/adodbstream/pkg/host"
	"github.com/scriptemu/adodbstream/pkg/logging"
	"github.com/scriptemu/adodbstream/pkg/script"
)

// reporter prints step outcomes and tracks statistics for a script run.
type reporter struct {
	// host is the host executing the script.
	host *host.Host
	// script is the script being executed.
	script *script.Script
	// statusLinePrinter prints the progress status line.
	statusLinePrinter *cmd.StatusLinePrinter
	// steps is the number of steps executed.
	steps int
	// peakBytes is the largest amount of content held by live objects after
	// any step.
	peakBytes uint64
}

// StepCompleted implements script.Observer.StepCompleted.
func (r *reporter) StepCompleted(outcome *script.Outcome) {
	// Update statistics.
	r.steps++
	if held := r.host.BytesHeld(); held > r.peakBytes {
		r.peakBytes = held
	}

	// Print the outcome.
	r.statusLinePrinter.Clear()
	description := outcome.Step.Description()
	if outcome.Failure != nil {
		fmt.Fprintf(color.Output, "  %s %s\n      %s\n",
			color.RedString("✗"), description, color.RedString(outcome.Failure.Error()),
		)
	} else if outcome.Err != nil {
		fmt.Fprintf(color.Output, "  %s %s => %s\n",
			color.GreenString("✓"), description, color.YellowString("%s error", outcome.Step.Error),
		)
	} else if outcome.Result != nil {
		fmt.Fprintf(color.Output, "  %s %s => %#v\n", color.GreenString("✓"), description, outcome.Result)
	} else {
		fmt.Fprintf(color.Output, "  %s %s\n", color.GreenString("✓"), description)
	}

	// Update the status line.
	r.statusLinePrinter.Print(fmt.Sprintf("%s: step %d/%d, %s held",
		r.script.Name, outcome.Index, len(r.script.Steps), humanize.Bytes(r.host.BytesHeld()),
	))
}

// loadConfiguration loads the host configuration, applying any file and
// environment overrides.
func loadConfiguration() (*configuration.Configuration, error) {
	// Load the configuration file, if any.
	config := configuration.Default()
	if runConfiguration.configuration != "" {
		var err error
		if config, err = configuration.Load(runConfiguration.configuration); err != nil {
			return nil, err
		}
	}

	// Apply environment overrides. A missing environment file isn't an error,
	// but it's likely a mistake.
	if path := runConfiguration.environmentFile; path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			cmd.Warning(fmt.Sprintf("environment file %s does not exist", path))
		}
	}
	environment, err := configuration.LoadEnvironment(runConfiguration.environmentFile)
	if err != nil {
		return nil, err
	} else if err = config.ApplyEnvironment(environment); err != nil {
		return nil, errors.Wrap(err, "invalid environment configuration")
	}

	// Success.
	return config, nil
}

// runMain is the entry point for the run command.
func runMain(_ *cobra.Command, arguments []string) error {
	// Load configuration.
	config, err := loadConfiguration()
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}

	// Load all scripts before running any of them.
	scripts := make([]*script.Script, len(arguments))
	for i, path := range arguments {
		if scripts[i], err = script.Load(path); err != nil {
			return errors.Wrapf(err, "unable to load script %s", path)
		}
	}

	// Run scripts, each against its own host.
	var passed, failed, steps int
	var peakBytes uint64
	for _, s := range scripts {
		h, err := host.New(config, logging.RootLogger)
		if err != nil {
			return errors.Wrap(err, "unable to create host")
		}
		fmt.Fprintln(color.Output, color.New(color.Bold).Sprint(s.Name))
		observer := &reporter{
			host:              h,
			script:            s,
			statusLinePrinter: cmd.NewStatusLinePrinter(),
		}
		err = script.Run(h, s, observer)
		observer.statusLinePrinter.Clear()
		h.Teardown()
		steps += observer.steps
		if observer.peakBytes > peakBytes {
			peakBytes = observer.peakBytes
		}
		if err != nil {
			failed++
			cmd.Error(err)
		} else {
			passed++
		}
	}

	// Print a summary.
	summary := fmt.Sprintf("%d passed, %d failed, %d steps, peak %s held",
		passed, failed, steps, humanize.Bytes(peakBytes),
	)
	if failed > 0 {
		fmt.Fprintln(color.Output, color.RedString(summary))
		return errors.Errorf("%d of %d scripts failed", failed, len(scripts))
	}
	fmt.Fprintln(color.Output, color.GreenString(summary))

	// Success.
	return nil
}

// runCommand is the run command.
var runCommand = &cobra.Command{
	Use:          "run <script>...",
	Short:        "Run automation scripts",
	Args:         cmd.RequireArguments,
	Run:          cmd.Mainify(runMain),
	SilenceUsage: true,
}

// runConfiguration stores configuration for the run command.
var runConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configuration is the path to the host configuration file.
	configuration string
	// environmentFile is the path to an environment file with configuration
	// overrides.
	environmentFile string
}

func init() {
	// Grab a handle for the command line flags.
	flags := runCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&runConfiguration.help, "help", "h", false, "Show help information")

	// Wire up configuration flags.
	flags.StringVarP(&runConfiguration.configuration, "configuration", "c", "", "Specify a host configuration file (YAML or TOML)")
	flags.StringVar(&runConfiguration.environmentFile, "env-file", "", "Specify an environment file with configuration overrides")
}
