package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/app"
	"github.com/vk/pipecheck/internal/ctxlog"
	"github.com/vk/pipecheck/internal/fsutil"
	"github.com/vk/pipecheck/internal/pipeline"
	"github.com/vk/pipecheck/internal/render"
)

var pipelineExtensions = []string{".json", ".yaml", ".yml"}

type checkOptions struct {
	format  string
	order   bool
	noColor bool
}

func newCheckCommand() *cobra.Command {
	var opts checkOptions

	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check pipeline files for cycles",
		Long: `Analyze pipeline files offline. Directories are searched recursively for
.json, .yaml and .yml files.

Exit status is 0 when every pipeline is a DAG, 3 when any contains a
cycle, and 2 when a file cannot be read or is not a valid pipeline.

Examples:
  pipecheck check pipeline.json
  pipecheck check pipelines/ --format json
  pipecheck check flow.yaml --format mermaid > flow.mmd`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", string(render.FormatText), "Output format: "+strings.Join(formats, ", "))
	flags.BoolVar(&opts.order, "order", false, "Include the topological order.")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output.")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts checkOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return usageError(err)
	}

	paths, err := fsutil.ExpandPaths(args, pipelineExtensions...)
	if err != nil {
		return usageError(err)
	}
	if len(paths) == 0 {
		return &ExitError{Code: ExitUsage, Message: "no pipeline files found"}
	}

	logger, err := app.NewLogger(cmd.ErrOrStderr(), "warn", "text")
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger)
	analyzer := analysis.New(nil)

	reports := make([]render.Report, 0, len(paths))
	var failed, cyclic int
	for _, path := range paths {
		p, err := pipeline.Load(path)
		if err != nil {
			failed++
			reports = append(reports, render.Report{File: path, Error: pipeline.Problems(err)})
			continue
		}
		a := analyzer.Analyze(ctx, p)
		if a.HasCycle {
			cyclic++
		}
		reports = append(reports, render.Report{File: path, Analysis: a, Order: a.Order, Pipeline: p})
	}

	out := cmd.OutOrStdout()
	renderOpts := render.Options{
		Color: !opts.noColor && colorEnabled(out),
		Order: opts.order,
	}
	if err := render.Write(out, format, reports, renderOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	switch {
	case failed > 0:
		return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("%d of %d pipeline files could not be analyzed", failed, len(paths))}
	case cyclic > 0:
		return &ExitError{Code: ExitCycle, Message: fmt.Sprintf("%d of %d pipelines contain a cycle", cyclic, len(paths))}
	}
	return nil
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
