package cli

import (
	"fmt"

	"github.com/okian/statusboard/internal/domain/types"
	"github.com/spf13/cobra"
)

func newFacetsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "facets",
		Short: "List the models and temperatures present in the data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.loadOnce(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Snapshot()
			f := svc.Facets(snap)
			names := svc.DisplayNames(f.Models)

			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, types.FacetsResponse{Meta: snap.Meta(), Facets: f, DisplayNames: names})
			}
			if !printState(w, a.cfg.DataDir, snap) {
				return nil
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "MODEL\tNAME")
			for _, id := range f.Models {
				fmt.Fprintf(tw, "%s\t%s\n", id, names[id])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Temperatures: %s\n", joinTemperatures(f.Temperatures, f.InvalidTemperatures))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
