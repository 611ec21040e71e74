package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/scaffold"
)

// NewDisableCommand creates the disable command.
func NewDisableCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable [pattern]",
		Short: "Comment out matching files in the module manifests",
		Long: `Comment out every entry in the lib, include, python and grc manifests
whose file name matches [pattern]. Files stay on disk. Test registrations and
python package imports of the disabled files are commented out as well.

Without a pattern every listed file is offered.

Examples:
  blockbind disable square_ff
  blockbind disable '^qa_' --yes`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisable(rootOpts, firstArg(args), cmd)
		},
	}

	return cmd
}

func runDisable(opts *RootOptions, pattern string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	rec := &recording{}
	return s.run(cmd.Context(), "disable", pattern, rec, &scaffold.Disabler{
		Config:   s.cfg,
		Pattern:  pattern,
		Prompter: s.prompter(cmd),
		Tracker:  rec,
		Logger:   s.logger,
	})
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
