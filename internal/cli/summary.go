package cli

import (
	"fmt"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/types"
	"github.com/spf13/cobra"
)

type summaryOutput struct {
	Overview types.OverviewResponse `json:"overview"`
	Stats    types.StatsResponse    `json:"stats"`
}

func newSummaryCommand(a *app) *cobra.Command {
	var (
		filters filterFlags
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print an overview and rating statistics",
		Long: `Print headline figures for the whole data set followed by statistics
for the items matching the filters.

Examples:
  statusboard summary
  statusboard summary --model gpt-4o --kind activity
  statusboard summary --min-rating 80 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := filters.criteria(cmd)
			if err != nil {
				return err
			}
			svc, err := a.loadOnce(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Snapshot()
			overview := svc.Overview(snap)
			summary, err := svc.Stats(snap, c)
			if err != nil {
				return err
			}
			names := svc.DisplayNames(overview.Models)

			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, summaryOutput{
					Overview: types.OverviewResponse{Meta: snap.Meta(), OverviewResult: overview, DisplayNames: names},
					Stats:    types.StatsResponse{Meta: snap.Meta(), NoData: !summary.HasData(), Summary: summary},
				})
			}

			if !printState(w, a.cfg.DataDir, snap) {
				return nil
			}
			fmt.Fprintf(w, "Responses: %d  Items: %d\n", overview.Responses, overview.Items)
			display := make([]string, 0, len(overview.Models))
			for _, id := range overview.Models {
				display = append(display, names[id])
			}
			fmt.Fprintf(w, "Models: %s\n", strings.Join(display, ", "))
			fmt.Fprintf(w, "Temperatures: %s\n", joinTemperatures(overview.Temperatures, overview.InvalidTemperatures))
			if overview.Top != nil {
				fmt.Fprintf(w, "Top: %s\n", formatItem(*overview.Top))
			}
			fmt.Fprintln(w)

			rating, err := summary.RatingSummary()
			if err != nil {
				fmt.Fprintln(w, "No items match the filters.")
				return nil
			}
			fmt.Fprintf(w, "Matching items: %d\n", summary.Count)
			fmt.Fprintf(w, "Mean rating: %.2f\n", rating.Mean)
			fmt.Fprintf(w, "Highest: %s\n", formatItem(rating.Highest))
			fmt.Fprintf(w, "Lowest: %s\n", formatItem(rating.Lowest))

			tw := newTable(w)
			fmt.Fprintln(tw, "KIND\tCOUNT")
			for _, k := range model.Kinds() {
				fmt.Fprintf(tw, "%s\t%d\n", k, summary.ByKind[k])
			}
			fmt.Fprintln(tw, "\t")
			fmt.Fprintln(tw, "BAND\tCOUNT")
			for _, b := range model.Bands() {
				fmt.Fprintf(tw, "%s\t%d\n", b, summary.ByBand[b])
			}
			return tw.Flush()
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
