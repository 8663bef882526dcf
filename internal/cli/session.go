package cli

import (
	"github.com/spf13/cobra"

	"github.com/emistat-io/emistat/internal/engine"
	"github.com/emistat-io/emistat/internal/session"
)

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session <script.yaml>",
		Short: "Run a scripted operation session",
		Long: `Execute a YAML script of analysis operations, in order, against one
loaded dataset, and print the resulting transcript.

Scripts are the home of the mutating operations: insert adds an observation
and undo rolls back the most recent insert. All query operations are
available too, so a script can interleave mutations and checks.

Example script:
  name: demo
  ops:
    - op: insert
      country: Kenya
      year: 2023
      emission: 55.75
    - op: search
      country: Kenya
    - op: undo

A dataset is optional for sessions; without --data the script starts from
an empty analyzer.

Example:
  emistat session demo.yaml --data emissions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runSession(opts *RootOptions, cmd *cobra.Command, scriptPath string) error {
	script, err := session.LoadScript(scriptPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}

	cfg, err := loadedConfig(opts)
	if err != nil {
		return err
	}

	// Sessions may start empty: a script of inserts needs no source file.
	analyzer := engine.New(nil)
	if cfg.Source.Path != "" {
		analyzer, _, err = loadAnalyzer(opts)
		if err != nil {
			return err
		}
	}

	transcript, err := session.Run(analyzer, script)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run script", err)
	}

	f := newFormatter(cmd, opts)
	if opts.Format == "json" {
		if err := f.Success(transcript); err != nil {
			return err
		}
	} else if err := transcript.RenderText(cmd.OutOrStdout()); err != nil {
		return err
	}

	if transcript.Failed() {
		return NewExitError(ExitFailure, "script reported operation failures")
	}
	return nil
}
