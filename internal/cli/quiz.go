package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"aerogap-backend/internal/quiz"
)

func newQuizCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "quiz ANSWERS",
		Short: "Score quick-assessment answers and list the flagged areas",
		Long: `Score a quick-assessment answers file (YAML or JSON mapping each
question's answer field to the chosen option), for example:

  hasSMS: no
  capaSystemStatus: partial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := LoadAnswers(args[0])
			if err != nil {
				return err
			}
			flags := quiz.ComputeFlaggedAreas(answers)

			out := cmd.OutOrStdout()
			switch f := root.format(format); f {
			case formatJSON:
				return writeJSON(out, map[string]any{"flaggedAreas": flags})
			case formatText:
			default:
				return eris.Errorf("unknown format %q", f)
			}

			if len(flags) == 0 {
				color.New(color.FgGreen).Fprintln(out, "No areas flagged.")
				return nil
			}
			fmt.Fprintf(out, "Flagged areas (%d):\n", len(flags))
			for _, fl := range flags {
				c := color.New(color.FgYellow)
				if fl.Severity == quiz.SeverityHigh {
					c = color.New(color.FgRed, color.Bold)
				}
				fmt.Fprintf(out, "  %s %s\n", c.Sprintf("[%s]", strings.ToUpper(string(fl.Severity))), fl.Label)
				fmt.Fprintf(out, "      %s\n", fl.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format (text, json)")
	return cmd
}
