package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/scaffold"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm [pattern]",
		Short: "Delete matching files and unlist them from the manifests",
		Long: `Delete the sources, headers, python modules and descriptors whose file
name matches [pattern], and remove them from the listing statements of their
directory manifest. Every deletion is confirmed unless --yes is given.

Examples:
  blockbind rm square_ff
  blockbind rm '^square2' --yes --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, firstArg(args), cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, pattern string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	rec := &recording{}
	return s.run(cmd.Context(), "rm", pattern, rec, &scaffold.Remover{
		Config:   s.cfg,
		Pattern:  pattern,
		Prompter: s.prompter(cmd),
		Tracker:  rec,
		Logger:   s.logger,
	})
}
