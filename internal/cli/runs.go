package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/newsgate/internal/refstore"
)

// runsFlags holds the flags for the runs command.
type runsFlags struct {
	StorePath string
	FeedID    string
	Limit     int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &runsFlags{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded classification runs for a feed",
		Long: `List recorded classification runs for a feed, newest first.

Runs are recorded by classify --record and carry per-bucket counts, so
the history shows how a feed's batches have been splitting over time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(rootOpts, flags, cmd)
		},
	}

	cmd.Flags().StringVar(&flags.StorePath, "store", "newsgate.db", "reference-set database path")
	cmd.Flags().StringVarP(&flags.FeedID, "feed", "f", "", "feed id (required)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "maximum number of runs to list")
	_ = cmd.MarkFlagRequired("feed")

	return cmd
}

func runRuns(opts *RootOptions, flags *runsFlags, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	store, err := refstore.Open(flags.StorePath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), flags.FeedID, flags.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintf(formatter.Writer, "no runs recorded for feed %s\n", flags.FeedID)
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  articles=%d old=%d title=%d date=%d filter=%d deliverable=%d\n",
			r.ID, r.RanAt, r.BatchSize,
			r.Old, r.BlockedByTitle, r.BlockedByDate, r.BlockedByFilter, r.Deliverable)
	}
	return nil
}
