package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emistat-io/emistat/internal/engine"
)

// TopPayload is the JSON payload of the top command.
type TopPayload struct {
	Year   int             `json:"year"`
	N      int             `json:"n"`
	Ranked []engine.Ranked `json:"ranked"`
}

// NewTopCommand creates the top command.
func NewTopCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top <year> <n>",
		Short: "Top N emitting countries for a year",
		Long: `Rank the n countries with the highest emission in the given year,
highest first. Fewer than n countries reporting yields a shorter list;
a year with no data yields an empty one. n must be positive.

A negative n must follow a "--" terminator so it is not read as a flag:
  emistat top --data emissions.csv 2020 -- -2

Example:
  emistat top 2020 5 --data emissions.csv`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid year %q", args[0]))
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid count %q", args[1]))
			}
			return runTop(rootOpts, cmd, year, n)
		},
	}
	return cmd
}

func runTop(opts *RootOptions, cmd *cobra.Command, year, n int) error {
	a, _, err := loadAnalyzer(opts)
	if err != nil {
		return err
	}
	f := newFormatter(cmd, opts)

	ranked, err := a.TopN(year, n)
	if err != nil {
		if engine.IsInvalidArgument(err) {
			return f.Fail(ExitFailure, ErrCodeInvalidArg, err.Error())
		}
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error())
	}

	if opts.Format == "json" {
		return f.Success(TopPayload{Year: year, N: n, Ranked: ranked})
	}

	w := cmd.OutOrStdout()
	if len(ranked) == 0 {
		fmt.Fprintf(w, "No emission data found for any country in %d.\n", year)
		return nil
	}
	fmt.Fprintf(w, "Top %d emitters in %d:\n", len(ranked), year)
	for i, r := range ranked {
		fmt.Fprintf(w, "  %d. %s: %s Mt\n", i+1, r.Country, formatMt(r.Emission))
	}
	return nil
}
