package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent gapcheck runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := root.format(format)
			if f != formatText && f != formatJSON {
				return eris.Errorf("unknown format %q", f)
			}
			if limit <= 0 {
				limit = root.settings.HistoryLimit
			}

			store, err := root.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f == formatJSON {
				return writeJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			for _, r := range runs {
				name := r.CompanyName
				if name == "" {
					name = "(unnamed)"
				}
				high := fmt.Sprintf("%d high", r.HighGaps)
				if r.HighGaps > 0 {
					high = color.RedString(high)
				}
				fmt.Fprintf(out, "%s  %-24s %s  %2d gaps (%s)  %s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					name,
					scoreColor(r.OverallScore).Sprintf("%3d%%", r.OverallScore),
					r.GapCount, high, r.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format (text, json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to show (default from settings)")
	return cmd
}
