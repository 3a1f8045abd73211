package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/newsgate/internal/classify"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &classifyFlags{}

	cmd := &cobra.Command{
		Use:   "explain <batch-file> <article-id>",
		Short: "Explain the classification decision for one article",
		Long: `Explain why one article in a batch landed in its bucket.

Runs the same classification as the classify command and renders the
recorded decision for the named article: its outcome, the reason, and
the exact filter terms that matched or blocked it. Never re-evaluates
filters, so the explanation describes the decision that was made.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, flags, args[0], args[1], cmd)
		},
	}

	flags.register(cmd)

	return cmd
}

func runExplain(opts *RootOptions, flags *classifyFlags, batchPath, articleID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	run, err := prepareRun(cmd.Context(), formatter, flags, batchPath)
	if err != nil {
		return err
	}
	defer run.store.Close()

	result := classify.Classify(run.batch, run.ref, run.options)

	if opts.Format == "json" {
		d, ok := result.Decision(articleID)
		if !ok {
			msg := fmt.Sprintf("no decision recorded for article %q", articleID)
			_ = formatter.Error(ErrCodeNotFound, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		return formatter.Success(d)
	}

	report := classify.NewReport(result)
	explanation, err := report.Explain(articleID)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "explain", err)
	}

	fmt.Fprint(formatter.Writer, explanation)
	return nil
}
