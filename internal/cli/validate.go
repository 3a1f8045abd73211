package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/newsgate/internal/config"
)

// ValidateOutput is the JSON payload of the validate command.
type ValidateOutput struct {
	Path  string   `json:"path"`
	Valid bool     `json:"valid"`
	Feeds []string `json:"feeds,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a settings file",
		Long: `Validate a settings file against the embedded schema.

Checks YAML well-formedness, rejects unknown fields, enforces the schema
(required feed ids, duration syntax, filter shapes), and rejects
duplicate feed ids. Exits 1 on a validation failure.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(path)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitFailure, "validate config", err)
	}

	out := ValidateOutput{Path: path, Valid: true}
	for _, f := range cfg.Feeds {
		out.Feeds = append(out.Feeds, f.ID)
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	fmt.Fprintf(formatter.Writer, "%s: valid (%d feed(s))\n", path, len(out.Feeds))
	for _, id := range out.Feeds {
		formatter.VerboseLog("feed: %s", id)
	}
	return nil
}
