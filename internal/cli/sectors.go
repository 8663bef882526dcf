package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/emistat-io/emistat/internal/engine"
)

// SectorsPayload is the JSON payload of the sectors command.
type SectorsPayload struct {
	Available bool               `json:"available"`
	Column    string             `json:"column,omitempty"`
	Totals    map[string]float64 `json:"totals,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

// SectorsOptions holds flags for the sectors command.
type SectorsOptions struct {
	*RootOptions
	Column string
}

// NewSectorsCommand creates the sectors command.
func NewSectorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SectorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sectors",
		Short: "Aggregate emissions by a categorical column",
		Long: `Sum emissions per distinct value of a categorical column in the
source data (for example a Sector column). When the column is absent, the
aggregation is reported as unavailable; that is a capability gap of the
dataset, not an error.

Example:
  emistat sectors --column Sector --data emissions.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSectors(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Column, "column", "", "categorical column to aggregate by (defaults to the config's columns.sector)")

	return cmd
}

func runSectors(opts *SectorsOptions, cmd *cobra.Command) error {
	a, cfg, err := loadAnalyzer(opts.RootOptions)
	if err != nil {
		return err
	}
	f := newFormatter(cmd, opts.RootOptions)

	column := opts.Column
	if column == "" {
		column = cfg.Columns.Sector
	}

	totals, err := a.SectorAggregate(column)
	if err != nil {
		if !engine.IsColumnUnavailable(err) {
			return f.Fail(ExitFailure, ErrCodeGeneric, err.Error())
		}

		payload := SectorsPayload{Available: false, Column: column, Reason: err.Error()}
		if opts.Format == "json" {
			return f.Success(payload)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sector aggregation unavailable: %s\n", err.Error())
		return nil
	}

	if opts.Format == "json" {
		return f.Success(SectorsPayload{Available: true, Column: column, Totals: totals})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Emissions by %s:\n", column)
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s Mt\n", k, formatMt(totals[k]))
	}
	return nil
}
