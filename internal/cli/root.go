package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the pipecheck command tree writing to outW and errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "pipecheck",
		Short: "Validate pipeline graphs",
		Long: `pipecheck validates pipeline graphs built in a visual editor: it checks
that nodes wired by edges form a DAG and reports the first cycle it finds.

Run it as a service for the editor, or check pipeline files offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(newServeCommand(), newCheckCommand())
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
