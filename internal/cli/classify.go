package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/newsgate/internal/article"
	"github.com/roach88/newsgate/internal/classify"
	"github.com/roach88/newsgate/internal/config"
	"github.com/roach88/newsgate/internal/refstore"
)

// classifyFlags holds the flags shared by classify and explain.
type classifyFlags struct {
	ConfigPath string
	FeedID     string
	StorePath  string
	Now        string
	Merge      bool
	Record     bool
}

func (f *classifyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "newsgate.yaml", "settings file")
	cmd.Flags().StringVarP(&f.FeedID, "feed", "f", "", "feed id from the settings file (required)")
	cmd.Flags().StringVar(&f.StorePath, "store", "newsgate.db", "reference-set database path")
	cmd.Flags().StringVar(&f.Now, "now", "", "fixed RFC3339 instant for staleness checks (default: wall clock)")
	_ = cmd.MarkFlagRequired("feed")
}

// ClassifyOutput is the JSON payload of the classify command.
type ClassifyOutput struct {
	Feed     string              `json:"feed"`
	RunID    string              `json:"run_id,omitempty"`
	Buckets  classify.Buckets    `json:"buckets"`
	Notify   map[string][]string `json:"notify,omitempty"`
	Invalid  []string            `json:"invalid,omitempty"`
	Decision []classify.Decision `json:"decisions,omitempty"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &classifyFlags{}

	cmd := &cobra.Command{
		Use:   "classify <batch-file>",
		Short: "Classify a fetched article batch for one feed",
		Long: `Classify a fetched article batch against a feed's reference set.

Loads the feed's resolved options and filters from the settings file, takes
a reference-set snapshot from the store, and partitions the batch into the
old / blocked / deliverable buckets. With --merge, deliverable identities
are merged into the reference set afterwards - pass it only when this
invocation stands in for a confirmed delivery.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(rootOpts, flags, args[0], cmd)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.Merge, "merge", false, "merge deliverable identities into the reference set")
	cmd.Flags().BoolVar(&flags.Record, "record", false, "append a run audit row to the store")

	return cmd
}

func runClassify(opts *RootOptions, flags *classifyFlags, batchPath string, cmd *cobra.Command) error {
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

	out := ClassifyOutput{
		Feed:    flags.FeedID,
		Buckets: result.Buckets,
	}
	for _, e := range result.Errs() {
		out.Invalid = append(out.Invalid, e.Error())
	}
	if opts.Verbose {
		out.Decision = result.Decisions
	}
	out.Notify = notifyPlan(run, result)

	if flags.Record {
		runID, err := run.store.RecordRun(cmd.Context(), flags.FeedID, result)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "record run", err)
		}
		out.RunID = runID
		formatter.VerboseLog("recorded run %s", runID)
	}

	if flags.Merge {
		err := run.store.MergeDeliverable(
			cmd.Context(), flags.FeedID, run.batch,
			result.Buckets.Deliverable, run.options.CompareFields,
		)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "merge deliverable", err)
		}
		formatter.VerboseLog("merged %d deliverable article(s)", len(result.Buckets.Deliverable))
	}

	if err := outputClassify(formatter, out, result); err != nil {
		return err
	}

	if len(out.Invalid) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d article(s) could not be classified", len(out.Invalid)))
	}
	return nil
}

// preparedRun bundles everything a classification invocation needs.
type preparedRun struct {
	batch       []article.Article
	options     classify.Options
	subscribers []classify.Subscriber
	store       *refstore.Store
	ref         *article.ReferenceSet
}

// notifyPlan maps each deliverable article id to the subscribers that
// should be mentioned for it.
func notifyPlan(run *preparedRun, result classify.Result) map[string][]string {
	if len(run.subscribers) == 0 {
		return nil
	}

	byID := make(map[string]article.Article, len(run.batch))
	for _, a := range run.batch {
		if id := a.ID(); id != "" {
			byID[id] = a
		}
	}

	plan := make(map[string][]string)
	for _, id := range result.Buckets.Deliverable {
		for _, sub := range classify.MatchSubscribers(byID[id], run.subscribers) {
			plan[id] = append(plan[id], sub.ID)
		}
	}
	return plan
}

// prepareRun loads config, batch, and store state for classify/explain.
func prepareRun(ctx context.Context, formatter *OutputFormatter, flags *classifyFlags, batchPath string) (*preparedRun, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	feed, ok := cfg.Feed(flags.FeedID)
	if !ok {
		msg := fmt.Sprintf("feed %q not found in %s", flags.FeedID, flags.ConfigPath)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return nil, NewExitError(ExitCommandError, msg)
	}

	options, err := cfg.ResolveOptions(feed)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "resolve options", err)
	}

	if flags.Now != "" {
		now, err := time.Parse(time.RFC3339, flags.Now)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("parse --now: %v", err), nil)
			return nil, WrapExitError(ExitCommandError, "parse --now", err)
		}
		options.Now = now
	}

	batch, err := loadBatch(batchPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBatch, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load batch", err)
	}

	store, err := refstore.Open(flags.StorePath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}

	ref, err := store.Snapshot(ctx, flags.FeedID)
	if err != nil {
		store.Close()
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "snapshot reference set", err)
	}

	formatter.VerboseLog("feed %s: %d reference article(s), batch of %d", flags.FeedID, ref.Len(), len(batch))

	return &preparedRun{
		batch:       batch,
		options:     options,
		subscribers: feed.Subscribers,
		store:       store,
		ref:         ref,
	}, nil
}

// outputClassify renders the classification result.
func outputClassify(formatter *OutputFormatter, out ClassifyOutput, result classify.Result) error {
	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	report := classify.NewReport(result)
	fmt.Fprintf(formatter.Writer, "feed %s\n%s", out.Feed, report.Summary())
	if len(result.Buckets.Deliverable) > 0 {
		fmt.Fprintf(formatter.Writer, "deliverable: %v\n", result.Buckets.Deliverable)
	}
	for _, id := range result.Buckets.Deliverable {
		if subs := out.Notify[id]; len(subs) > 0 {
			fmt.Fprintf(formatter.Writer, "notify %s: %v\n", id, subs)
		}
	}
	if out.RunID != "" {
		fmt.Fprintf(formatter.Writer, "run: %s\n", out.RunID)
	}
	for _, msg := range out.Invalid {
		fmt.Fprintf(formatter.Writer, "invalid: %s\n", msg)
	}
	return nil
}
