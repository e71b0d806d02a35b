package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"aerogap-backend/internal/progress"
)

func newProgressCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "progress FILE",
		Short: "Show how complete an assessment file is, section by section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := LoadAssessment(args[0])
			if err != nil {
				return err
			}
			summary := progress.Default().Summarize(data)

			out := cmd.OutOrStdout()
			switch f := root.format(format); f {
			case formatJSON:
				return writeJSON(out, summary)
			case formatText:
			default:
				return eris.Errorf("unknown format %q", f)
			}

			bold := color.New(color.Bold)
			bold.Fprintf(out, "Overall: %.0f%%\n\n", summary.Overall)
			for _, s := range summary.Sections {
				pct := s.Completion * 100
				c := color.New(color.FgYellow)
				switch {
				case s.Completion >= 1:
					c = color.New(color.FgGreen)
				case s.Completion == 0:
					c = color.New(color.FgRed)
				}
				fmt.Fprintf(out, "  %-32s %s %s\n", s.Title, progressBar(s.Completion, 20), c.Sprintf("%3.0f%%", pct))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format (text, json)")
	return cmd
}
