package cli

import (
	"fmt"

	"github.com/okian/statusboard/internal/domain/query"
	"github.com/okian/statusboard/internal/domain/types"
	"github.com/spf13/cobra"
)

func newItemsCommand(a *app) *cobra.Command {
	var (
		filters filterFlags
		sortKey string
		order   string
		limit   int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Print the filtered items as a sorted table",
		Long: `Print every item matching the filters, one row per item, tagged with
the model and temperature it came from.

Examples:
  statusboard items
  statusboard items --sort name --order asc
  statusboard items --model gpt-4o --model claude-opus-4 --limit 10
  statusboard items --temperature 0.7 --kind object --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := filters.criteria(cmd)
			if err != nil {
				return err
			}
			key, err := query.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			ord, err := query.ParseOrder(order)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			svc, err := a.loadOnce(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Snapshot()
			items, err := svc.Items(snap, c, key, ord)
			if err != nil {
				return err
			}
			total := len(items)
			if limit > 0 && limit < total {
				items = items[:limit]
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, types.ItemsResponse{
					Meta:  snap.Meta(),
					Sort:  key,
					Order: ord,
					Total: total,
					Items: items,
				})
			}

			if !printState(w, a.cfg.DataDir, snap) {
				return nil
			}
			if total == 0 {
				fmt.Fprintln(w, "No items match the filters.")
				return nil
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "RATING\tNAME\tTYPE\tMODEL\tTEMP")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatRating(it.Rating), it.Name, it.Kind, it.Model, it.Temperature)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(items) < total {
				fmt.Fprintf(w, "(%d of %d items)\n", len(items), total)
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(query.DefaultSortKey), "rating, name, model or temperature")
	cmd.Flags().StringVarP(&order, "order", "o", string(query.DefaultOrder), "asc or desc")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max rows (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
