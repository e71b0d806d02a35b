package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/gapanalysis"
	"aerogap-backend/internal/history"
	"aerogap-backend/internal/reports/render"
)

type analyzeOptions struct {
	format      string
	pdfDir      string
	xlsxDir     string
	noHistory   bool
	concurrency int
}

// FileResult is the analysis of one input file.
type FileResult struct {
	Source  string            `json:"source"`
	Result  assessment.Result `json:"result"`
	PDF     string            `json:"pdf,omitempty"`
	XLSX    string            `json:"xlsx,omitempty"`
	History string            `json:"historyId,omitempty"`
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Run the gap analysis over one or more assessment files",
		Long: `Run the gap analysis over assessment files (YAML or JSON).

Examples:
  # Analyze one organization
  gapcheck analyze acme.yaml

  # Analyze several files and write PDF reports into ./out
  gapcheck analyze acme.yaml skyline.json --pdf ./out

  # Machine-readable output
  gapcheck analyze acme.yaml --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, o, args)
		},
	}

	cmd.Flags().StringVarP(&o.format, "format", "o", "", "Output format (text, json)")
	cmd.Flags().StringVar(&o.pdfDir, "pdf", "", "Write a PDF report per file into this directory")
	cmd.Flags().StringVar(&o.xlsxDir, "xlsx", "", "Write an Excel workbook per file into this directory")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "Do not record the runs in the local history")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 0, "Files analyzed in parallel (default from settings)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, o *analyzeOptions, paths []string) error {
	format := root.format(o.format)
	if format != formatText && format != formatJSON {
		return eris.Errorf("unknown format %q", format)
	}
	limit := o.concurrency
	if limit <= 0 {
		limit = root.settings.Concurrency
	}
	ctx := cmd.Context()

	s := newSpinner(cmd.ErrOrStderr(), fmt.Sprintf(" Analyzing %d assessment file(s)...", len(paths)))
	if format == formatText {
		s.Start()
	}
	results, err := AnalyzeFiles(ctx, paths, limit)
	s.Stop()
	if err != nil {
		return err
	}

	if err := exportReports(results, o.pdfDir, o.xlsxDir); err != nil {
		return err
	}
	if !o.noHistory {
		if err := recordRuns(ctx, root, results); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, results)
	}
	for _, fr := range results {
		printResult(out, fr.Source, fr.Result)
		if fr.PDF != "" {
			fmt.Fprintf(out, "PDF report: %s\n", fr.PDF)
		}
		if fr.XLSX != "" {
			fmt.Fprintf(out, "Workbook: %s\n", fr.XLSX)
		}
	}
	return nil
}

// AnalyzeFiles loads and analyzes paths with at most limit files in flight.
// Results keep the order of paths.
func AnalyzeFiles(ctx context.Context, paths []string, limit int) ([]FileResult, error) {
	if limit <= 0 {
		limit = 1
	}
	analyzer := &gapanalysis.Analyzer{}
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			data, err := LoadAssessment(path)
			if err != nil {
				return err
			}
			res, err := analyzer.Analyze(gctx, data)
			if err != nil {
				return eris.Wrapf(err, "analyze %s", path)
			}
			results[i] = FileResult{Source: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func exportReports(results []FileResult, pdfDir, xlsxDir string) error {
	used := map[string]int{}
	for i := range results {
		r := &results[i]
		if pdfDir != "" {
			data, err := render.PDF(r.Result)
			if err != nil {
				return eris.Wrapf(err, "render pdf for %s", r.Source)
			}
			path, err := writeExport(pdfDir, render.FileName(r.Result.CompanyName), data, used)
			if err != nil {
				return err
			}
			r.PDF = path
		}
		if xlsxDir != "" {
			data, err := render.XLSX(r.Result)
			if err != nil {
				return eris.Wrapf(err, "render workbook for %s", r.Source)
			}
			path, err := writeExport(xlsxDir, render.WorkbookName(r.Result.CompanyName), data, used)
			if err != nil {
				return err
			}
			r.XLSX = path
		}
	}
	return nil
}

// writeExport writes data under dir, numbering names already used in this run.
func writeExport(dir, name string, data []byte, used map[string]int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, name)
	used[path]++
	if n := used[path]; n > 1 {
		ext := filepath.Ext(name)
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "write %s", path)
	}
	return path, nil
}

func recordRuns(ctx context.Context, root *rootOptions, results []FileResult) error {
	store, err := root.openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	for i := range results {
		r := &results[i]
		source := r.Source
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
		run, err := store.Record(ctx, history.Run{
			Source:       source,
			CompanyName:  r.Result.CompanyName,
			OverallScore: r.Result.OverallScore,
			GapCount:     len(r.Result.Gaps),
			HighGaps:     r.Result.CountBySeverity(assessment.SeverityCritical) + r.Result.CountBySeverity(assessment.SeverityHigh),
		})
		if err != nil {
			return err
		}
		r.History = run.ID
	}
	return nil
}
