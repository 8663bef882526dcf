package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emistat-io/emistat/internal/series"
)

// SearchPayload is the JSON payload of the search command.
type SearchPayload struct {
	Country string               `json:"country"`
	Records []series.Observation `json:"records"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <country>",
		Short: "List all emission records for a country",
		Long: `List every (year, emission) record for a country, oldest first.

Country names match exactly and are case-sensitive. An unknown country is
an empty result, not an error.

Example:
  emistat search Kenya --data emissions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runSearch(opts *RootOptions, cmd *cobra.Command, country string) error {
	a, _, err := loadAnalyzer(opts)
	if err != nil {
		return err
	}
	f := newFormatter(cmd, opts)

	records := a.SearchCountry(country)
	if records == nil {
		records = []series.Observation{}
	}

	if opts.Format == "json" {
		return f.Success(SearchPayload{Country: country, Records: records})
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(w, "No emission data found for %q.\n", country)
		return nil
	}
	fmt.Fprintf(w, "Emissions for %s:\n", country)
	for _, r := range records {
		fmt.Fprintf(w, "  %d: %s Mt\n", r.Year, formatMt(r.Emission))
	}
	return nil
}
