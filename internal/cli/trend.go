package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emistat-io/emistat/internal/engine"
	"github.com/emistat-io/emistat/internal/series"
)

// TrendPayload is the JSON payload of the trend command.
type TrendPayload struct {
	Country string               `json:"country"`
	Records []series.Observation `json:"records"`
	Summary *engine.Summary      `json:"summary,omitempty"`
}

// NewTrendCommand creates the trend command.
func NewTrendCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend <country>",
		Short: "Emission trend for a country, with summary",
		Long: `Show a country's emissions sorted by year, with observation count,
mean emission, and the peak year.

Example:
  emistat trend Algeria --data emissions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrend(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runTrend(opts *RootOptions, cmd *cobra.Command, country string) error {
	a, _, err := loadAnalyzer(opts)
	if err != nil {
		return err
	}
	f := newFormatter(cmd, opts)

	records := a.Trend(country)
	if records == nil {
		records = []series.Observation{}
	}

	payload := TrendPayload{Country: country, Records: records}
	if summary, ok := a.Summarize(country); ok {
		payload.Summary = &summary
	}

	if opts.Format == "json" {
		return f.Success(payload)
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(w, "No emission data found for %q.\n", country)
		return nil
	}
	fmt.Fprintf(w, "Emission trend for %s:\n", country)
	for _, r := range records {
		fmt.Fprintf(w, "  %d: %s Mt\n", r.Year, formatMt(r.Emission))
	}
	if s := payload.Summary; s != nil {
		fmt.Fprintf(w, "Observations: %d, mean %s Mt, peak %s Mt in %d\n",
			s.Count, formatMt(s.Mean), formatMt(s.Peak.Emission), s.Peak.Year)
	}
	return nil
}
