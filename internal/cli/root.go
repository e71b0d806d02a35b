// Package cli implements the gapcheck command line tool.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aerogap-backend/internal/history"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type rootOptions struct {
	configPath  string
	historyPath string
	noColor     bool
	settings    Settings
}

// NewRootCmd builds the gapcheck command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "gapcheck",
		Short: "Offline gap analysis for aviation maintenance organizations",
		Long: `gapcheck runs the AeroGap rule engine against assessment files on disk.

It scores an organization's Part 145 readiness, lists the gaps and
recommendations, exports PDF and Excel reports and keeps a local history
of every run.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (default ~/.gapcheck.yaml)")
	cmd.PersistentFlags().StringVar(&opts.historyPath, "history-db", "", "History database (default ~/.gapcheck/history.db)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newProgressCmd(opts),
		newQuizCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() error {
	path, explicit := o.configPath, o.configPath != ""
	if !explicit {
		path = DefaultSettingsPath()
	}
	s, err := LoadSettings(path, explicit)
	if err != nil {
		return err
	}
	o.settings = s
	if o.historyPath == "" {
		o.historyPath = s.HistoryPath
	}
	if o.noColor || s.NoColor {
		color.NoColor = true
	}
	return nil
}

func (o *rootOptions) openHistory(ctx context.Context) (*history.Store, error) {
	path := o.historyPath
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return history.Open(ctx, path)
}

func (o *rootOptions) format(flag string) string {
	if flag != "" {
		return flag
	}
	return o.settings.Format
}
