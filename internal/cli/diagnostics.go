package cli

import (
	"fmt"

	"github.com/okian/statusboard/internal/domain/types"
	"github.com/spf13/cobra"
)

func newDiagnosticsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Show what loading defaulted, rejected or skipped",
		Long: `Load the data directory and list every value that was defaulted,
rejected, clamped or passed through, and every file that was skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.loadOnce(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Snapshot()
			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, types.DiagnosticsResponse{
					Meta:         snap.Meta(),
					FilesSeen:    snap.FilesSeen,
					FilesSkipped: snap.FilesSkipped,
					Diagnostics:  snap.Diagnostics,
				})
			}

			printState(w, a.cfg.DataDir, snap)
			fmt.Fprintf(w, "Files seen: %d  skipped: %d\n", snap.FilesSeen, snap.FilesSkipped)
			if len(snap.Diagnostics) == 0 {
				fmt.Fprintln(w, "No diagnostics.")
				return nil
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "FILE\tFIELD\tACTION\tMESSAGE")
			for _, d := range snap.Diagnostics {
				field := d.Field
				if field == "" {
					field = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.File, field, d.Action, d.Message)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
