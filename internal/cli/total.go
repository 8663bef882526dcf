package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// TotalPayload is the JSON payload of the total command.
type TotalPayload struct {
	Year  int      `json:"year"`
	Found bool     `json:"found"`
	Total *float64 `json:"total,omitempty"`
}

// NewTotalCommand creates the total command.
func NewTotalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "total <year>",
		Short: "Total emissions across all countries for a year",
		Long: `Report the total CO2 emission across all countries for one year.

A year no country has reported for is an empty result, not an error.

Example:
  emistat total 2020 --data emissions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid year %q", args[0]))
			}
			return runTotal(rootOpts, cmd, year)
		},
	}
	return cmd
}

func runTotal(opts *RootOptions, cmd *cobra.Command, year int) error {
	a, _, err := loadAnalyzer(opts)
	if err != nil {
		return err
	}
	f := newFormatter(cmd, opts)

	total, found := a.YearlyTotal(year)

	if opts.Format == "json" {
		payload := TotalPayload{Year: year, Found: found}
		if found {
			payload.Total = &total
		}
		return f.Success(payload)
	}

	w := cmd.OutOrStdout()
	if !found {
		fmt.Fprintf(w, "No emission data found for year %d.\n", year)
		return nil
	}
	fmt.Fprintf(w, "Total CO2 emissions for %d: %s Mt\n", year, formatMt(total))
	return nil
}
